package nsapi

import (
	"encoding/xml"
	"strings"
)

// UpdateOffset is subtracted from LASTUPDATE so the value reads as seconds
// into the world update cycle rather than wall-clock UTC.
const UpdateOffset = 4 * 3600

// PlaceholderOfficer is the officer slot name the game uses for ceased nations.
// It never counts as a real officer.
const PlaceholderOfficer = "cte"

// Region is a REGION record, either from the live API or from the data dump.
type Region struct {
	XMLName       xml.Name  `xml:"REGION"`
	DisplayName   string    `xml:"NAME"`
	NumNations    int       `xml:"NUMNATIONS"`
	RawNations    string    `xml:"NATIONS"`
	Delegate      string    `xml:"DELEGATE"`
	DelegateVotes int       `xml:"DELEGATEVOTES"`
	DelegateAuth  string    `xml:"DELEGATEAUTH"`
	Founder       string    `xml:"FOUNDER"`
	FounderAuth   string    `xml:"FOUNDERAUTH"`
	Factbook      string    `xml:"FACTBOOK"`
	Officers      []Officer `xml:"OFFICERS>OFFICER"`
	Embassies     []string  `xml:"EMBASSIES>EMBASSY"`
	RawLastUpdate float64   `xml:"LASTUPDATE"`
}

// Officer is a regional officer entry.
type Officer struct {
	Nation    string `xml:"NATION"`
	Office    string `xml:"OFFICE"`
	Authority string `xml:"AUTHORITY"`
	Time      int64  `xml:"TIME"`
	By        string `xml:"BY"`
	Order     int    `xml:"ORDER"`
}

// Name returns the normalized region name.
func (r *Region) Name() string {
	return Normalize(r.DisplayName)
}

// Nations parses the colon-delimited roster into normalized names.
func (r *Region) Nations() []string {
	parts := strings.Split(Normalize(r.RawNations), ":")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// HasNation reports whether name is on the roster.
func (r *Region) HasNation(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return NewNameSet(r.Nations()...).Has(name)
}

// LastUpdate returns the update timestamp shifted by UpdateOffset.
func (r *Region) LastUpdate() float64 {
	return r.RawLastUpdate - UpdateOffset
}

// IsPlaceholder reports whether the officer slot is held by the placeholder nation.
func (o Officer) IsPlaceholder() bool {
	return strings.ToLower(o.Nation) == PlaceholderOfficer
}

// ActiveOfficers returns the officers in roster order, placeholder slots removed.
// Both sides of an officer-count comparison must go through this filter.
func (r *Region) ActiveOfficers() []Officer {
	out := make([]Officer, 0, len(r.Officers))
	for _, o := range r.Officers {
		if o.IsPlaceholder() {
			continue
		}
		out = append(out, o)
	}
	return out
}

// IsRaidable reports whether the delegate authority carries the executive letter.
func (r *Region) IsRaidable() bool {
	return strings.Contains(r.DelegateAuth, "X")
}

// IsFounderless reports whether the founder is no longer on the roster.
func (r *Region) IsFounderless() bool {
	return !r.HasNation(r.Founder)
}
