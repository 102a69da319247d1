package nsapi

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// CensusDimension identifies one of the fixed census scales. Values outside
// the enumerated range are rejected when decoded.
type CensusDimension int

const (
	CensusCivilRights               CensusDimension = 0
	CensusEconomy                   CensusDimension = 1
	CensusPoliticalFreedoms         CensusDimension = 2
	CensusPopulation                CensusDimension = 3
	CensusWealthGaps                CensusDimension = 4
	CensusDeathRate                 CensusDimension = 5
	CensusCompassion                CensusDimension = 6
	CensusEcoFriendliness           CensusDimension = 7
	CensusSocialConservatism        CensusDimension = 8
	CensusNudity                    CensusDimension = 9
	CensusAutomobileManufacturing   CensusDimension = 10
	CensusCheeseExports             CensusDimension = 11
	CensusBasketWeaving             CensusDimension = 12
	CensusInformationTechnology     CensusDimension = 13
	CensusPizzaDelivery             CensusDimension = 14
	CensusTroutFishing              CensusDimension = 15
	CensusArmsManufacturing         CensusDimension = 16
	CensusAgriculture               CensusDimension = 17
	CensusBeverageSales             CensusDimension = 18
	CensusTimberWoodchipping        CensusDimension = 19
	CensusMining                    CensusDimension = 20
	CensusInsurance                 CensusDimension = 21
	CensusFurnitureRestoration      CensusDimension = 22
	CensusRetail                    CensusDimension = 23
	CensusBookPublishing            CensusDimension = 24
	CensusGambling                  CensusDimension = 25
	CensusManufacturing             CensusDimension = 26
	CensusGovernmentSize            CensusDimension = 27
	CensusWelfare                   CensusDimension = 28
	CensusPublicHealthcare          CensusDimension = 29
	CensusLawEnforcement            CensusDimension = 30
	CensusBusinessSubsidization     CensusDimension = 31
	CensusReligiousness             CensusDimension = 32
	CensusIncomeEquality            CensusDimension = 33
	CensusNiceness                  CensusDimension = 34
	CensusRudeness                  CensusDimension = 35
	CensusIntelligence              CensusDimension = 36
	CensusIgnorance                 CensusDimension = 37
	CensusPoliticalApathy           CensusDimension = 38
	CensusHealth                    CensusDimension = 39
	CensusCheerfulness              CensusDimension = 40
	CensusWeather                   CensusDimension = 41
	CensusCompliance                CensusDimension = 42
	CensusSafety                    CensusDimension = 43
	CensusLifespan                  CensusDimension = 44
	CensusIdeologicalRadicality     CensusDimension = 45
	CensusDefenseForces             CensusDimension = 46
	CensusPacifism                  CensusDimension = 47
	CensusEconomicFreedom           CensusDimension = 48
	CensusTaxation                  CensusDimension = 49
	CensusFreedomFromTaxation       CensusDimension = 50
	CensusCorruption                CensusDimension = 51
	CensusIntegrity                 CensusDimension = 52
	CensusAuthoritarianism          CensusDimension = 53
	CensusYouthRebelliousness       CensusDimension = 54
	CensusCulture                   CensusDimension = 55
	CensusEmployment                CensusDimension = 56
	CensusPublicTransport           CensusDimension = 57
	CensusTourism                   CensusDimension = 58
	CensusWeaponization             CensusDimension = 59
	CensusRecreationalDrugUse       CensusDimension = 60
	CensusObesity                   CensusDimension = 61
	CensusSecularism                CensusDimension = 62
	CensusEnvironmentalBeauty       CensusDimension = 63
	CensusCharmlessness             CensusDimension = 64
	CensusInfluence                 CensusDimension = 65
	CensusWorldAssemblyEndorsements CensusDimension = 66
	CensusAverageness               CensusDimension = 67
	CensusHumanDevelopmentIndex     CensusDimension = 68
	CensusPrimitiveness             CensusDimension = 69
	CensusScientificAdvancement     CensusDimension = 70
	CensusInclusiveness             CensusDimension = 71
	CensusAverageIncome             CensusDimension = 72
	CensusAverageIncomeOfPoor       CensusDimension = 73
	CensusAverageIncomeOfRich       CensusDimension = 74
	CensusPublicEducation           CensusDimension = 75
	CensusEconomicOutput            CensusDimension = 76
	CensusCrime                     CensusDimension = 77
	CensusForeignAid                CensusDimension = 78
	CensusBlackMarket               CensusDimension = 79
	CensusResidency                 CensusDimension = 80
	CensusSurvivors                 CensusDimension = 81
	CensusZombies                   CensusDimension = 82
	CensusDead                      CensusDimension = 83
	CensusPercentageZombies         CensusDimension = 84
	CensusAverageDisposableIncome   CensusDimension = 85
	CensusInternationalArtwork      CensusDimension = 86
)

// censusCount is one past the last enumerated dimension.
const censusCount = 87

var censusNames = [censusCount]string{
	"Civil Rights",
	"Economy",
	"Political Freedoms",
	"Population",
	"Wealth Gaps",
	"Death Rate",
	"Compassion",
	"Eco Friendliness",
	"Social Conservatism",
	"Nudity",
	"Automobile Manufacturing",
	"Cheese Exports",
	"Basket Weaving",
	"Information Technology",
	"Pizza Delivery",
	"Trout Fishing",
	"Arms Manufacturing",
	"Agriculture",
	"Beverage Sales",
	"Timber Woodchipping",
	"Mining",
	"Insurance",
	"Furniture Restoration",
	"Retail",
	"Book Publishing",
	"Gambling",
	"Manufacturing",
	"Government Size",
	"Welfare",
	"Public Healthcare",
	"Law Enforcement",
	"Business Subsidization",
	"Religiousness",
	"Income Equality",
	"Niceness",
	"Rudeness",
	"Intelligence",
	"Ignorance",
	"Political Apathy",
	"Health",
	"Cheerfulness",
	"Weather",
	"Compliance",
	"Safety",
	"Lifespan",
	"Ideological Radicality",
	"Defense Forces",
	"Pacifism",
	"Economic Freedom",
	"Taxation",
	"Freedom from Taxation",
	"Corruption",
	"Integrity",
	"Authoritarianism",
	"Youth Rebelliousness",
	"Culture",
	"Employment",
	"Public Transport",
	"Tourism",
	"Weaponization",
	"Recreational Drug Use",
	"Obesity",
	"Secularism",
	"Environmental Beauty",
	"Charmlessness",
	"Influence",
	"World Assembly Endorsements",
	"Averageness",
	"Human Development Index",
	"Primitiveness",
	"Scientific Advancement",
	"Inclusiveness",
	"Average Income",
	"Average Income of Poor",
	"Average Income of Rich",
	"Public Education",
	"Economic Output",
	"Crime",
	"Foreign Aid",
	"Black Market",
	"Residency",
	"Survivors",
	"Zombies",
	"Dead",
	"Percentage Zombies",
	"Average Disposable Income",
	"International Artwork",
}

// ParseCensusDimension validates a raw scale id.
func ParseCensusDimension(id int) (CensusDimension, error) {
	if id < 0 || id >= censusCount {
		return 0, fmt.Errorf("unknown census scale id %d", id)
	}
	return CensusDimension(id), nil
}

// Valid reports whether d is one of the enumerated dimensions.
func (d CensusDimension) Valid() bool {
	return d >= 0 && d < censusCount
}

func (d CensusDimension) String() string {
	if !d.Valid() {
		return "CensusDimension(" + strconv.Itoa(int(d)) + ")"
	}
	return censusNames[d]
}

// UnmarshalXMLAttr decodes the SCALE id attribute.
func (d *CensusDimension) UnmarshalXMLAttr(attr xml.Attr) error {
	id, err := strconv.Atoi(attr.Value)
	if err != nil {
		return fmt.Errorf("census scale id %q: %w", attr.Value, err)
	}
	parsed, err := ParseCensusDimension(id)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
