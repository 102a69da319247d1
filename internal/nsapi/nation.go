package nsapi

import (
	"encoding/xml"
	"strings"
)

// Nation is a NATION record as returned by the API. It is never mutated after
// decoding; per-run annotations live in the enrich package.
type Nation struct {
	XMLName         xml.Name      `xml:"NATION"`
	ID              string        `xml:"id,attr"`
	DisplayName     string        `xml:"NAME"`
	RawEndorsements string        `xml:"ENDORSEMENTS"`
	UNStatus        string        `xml:"UNSTATUS"`
	InfluenceLevel  string        `xml:"INFLUENCE"`
	Type            string        `xml:"TYPE"`
	FullName        string        `xml:"FULLNAME"`
	Flag            string        `xml:"FLAG"`
	CensusScores    []CensusScore `xml:"CENSUS>SCALE"`
}

// CensusScore is one SCALE entry of a nation's census block.
type CensusScore struct {
	Dimension  CensusDimension `xml:"id,attr"`
	Score      float64         `xml:"SCORE"`
	WorldRank  float64         `xml:"RANK"`
	RegionRank float64         `xml:"RRANK"`
}

// Name returns the normalized nation name.
func (n *Nation) Name() string {
	return Normalize(n.DisplayName)
}

// ParseEndorsements splits a comma-delimited endorsement list. An empty
// string yields an empty list. Duplicates are kept.
func ParseEndorsements(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Endorsements returns the nation's endorsers.
func (n *Nation) Endorsements() []string {
	return ParseEndorsements(n.RawEndorsements)
}

// EndorsementCount returns the number of endorsements received.
func (n *Nation) EndorsementCount() int {
	return len(n.Endorsements())
}

// IsWA reports World Assembly membership.
func (n *Nation) IsWA() bool {
	return strings.HasPrefix(n.UNStatus, "WA")
}

// Census returns the score for d, if the nation's census block carried it.
func (n *Nation) Census(d CensusDimension) (CensusScore, bool) {
	for _, c := range n.CensusScores {
		if c.Dimension == d {
			return c, true
		}
	}
	return CensusScore{}, false
}

// Influence returns the influence score truncated to an integer.
func (n *Nation) Influence() int {
	c, _ := n.Census(CensusInfluence)
	return int(c.Score)
}

// Residency returns the residency score truncated to an integer.
func (n *Nation) Residency() int {
	c, _ := n.Census(CensusResidency)
	return int(c.Score)
}
