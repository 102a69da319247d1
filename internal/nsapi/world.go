package nsapi

import "encoding/xml"

// World is the WORLD root of a world-shard lookup. goldeneye only requests
// the dispatch shard.
type World struct {
	XMLName    xml.Name `xml:"WORLD"`
	NumNations int      `xml:"NUMNATIONS"`
	NumRegions int      `xml:"NUMREGIONS"`
	Dispatch   Dispatch `xml:"DISPATCH"`
}

// Dispatch is a published dispatch body.
type Dispatch struct {
	ID       int    `xml:"id,attr"`
	Title    string `xml:"TITLE"`
	Author   string `xml:"AUTHOR"`
	Category string `xml:"CATEGORY"`
	Created  int64  `xml:"CREATED"`
	Edited   int64  `xml:"EDITED"`
	Views    int    `xml:"VIEWS"`
	Score    int    `xml:"SCORE"`
	Text     string `xml:"TEXT"`
}
