package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldeneye/internal/enrich"
	"goldeneye/internal/nsapi"
	"goldeneye/internal/region"
)

func plainStyles() Styles {
	return NewStyles(&bytes.Buffer{})
}

func liveRegion() *nsapi.Region {
	return &nsapi.Region{
		DisplayName:  "Test Region",
		NumNations:   100,
		RawNations:   "alpha:beta:carol",
		Delegate:     "alpha",
		DelegateAuth: "XWAB",
		Founder:      "zed",
		Officers: []nsapi.Officer{
			{Nation: "a"}, {Nation: "b"}, {Nation: "c"},
		},
		Embassies:     []string{"foo", "Bar_Region"},
		RawLastUpdate: nsapi.UpdateOffset + 3723,
	}
}

func priorRegion() *nsapi.Region {
	return &nsapi.Region{
		DisplayName: "Test Region",
		NumNations:  90,
		RawNations:  "alpha:dave:erin:frank",
		Officers: []nsapi.Officer{
			{Nation: "a"}, {Nation: "CTE"}, {Nation: "b"},
		},
		Embassies: []string{"foo", "Bar_Region", "baz"},
	}
}

func testRoster() *enrich.Roster {
	return &enrich.Roster{
		Delegate: &enrich.Member{
			Role:      enrich.RoleDelegate,
			Authority: "XWAB",
			Nation: &nsapi.Nation{
				DisplayName:     "alpha",
				RawEndorsements: "carol,dave",
				UNStatus:        "WA Delegate",
				InfluenceLevel:  "Vassal",
				CensusScores: []nsapi.CensusScore{
					{Dimension: nsapi.CensusInfluence, Score: 2500.7},
					{Dimension: nsapi.CensusResidency, Score: 42.9},
				},
			},
		},
		Officers: []enrich.Member{{
			Role:      enrich.RoleOfficer,
			Authority: "C",
			Nation:    &nsapi.Nation{DisplayName: "beta", UNStatus: "Non-member", InfluenceLevel: "Zero"},
		}},
		Residents: []enrich.Member{
			{
				Nation:     &nsapi.Nation{DisplayName: "carol", UNStatus: "WA Member"},
				Annotation: enrich.Annotation{EndorsingDelegate: true, EndorsingOfficers: true},
			},
			{
				Nation:     &nsapi.Nation{DisplayName: "dave", UNStatus: "Non-member"},
				Annotation: enrich.Annotation{EndorsingOfficers: true},
			},
		},
	}
}

func TestAssemble_Compared(t *testing.T) {
	a := NewAssembler(plainStyles(), nil)
	r := a.Assemble(Input{
		Snapshot: &region.Snapshot{Live: liveRegion(), Prior: priorRegion()},
		Roster:   testRoster(),
		CDS:      []string{"bar_region", "baz"},
	})

	want := []string{
		"Report on Test Region",
		"Raidable: ✓",
		"Founderless: ✓",
		"Last update: 1h2m3s into update",
		"Nations: 90 ↑ 100 (Net +10)",
		"Arrivals: 2",
		"Departures: 3",
		"Embassies: 3 ↓ 2 (Net -1)",
		"Closed embassies: baz",
		"CDS Embassies: 2 ↓ 1 (Net -1)",
		"Bad Embassies: Bar_Region",
		"Officers: 2 ↑ 3 (Net +1)",
		"VASSAL alpha - BC: ✓ - WA: ✓ - Endos: 2 - Influence: 2500 - PW:✓x",
		"ZERO beta - BC: x - WA: x - Endos: 0 - Influence: 0 - PW:xx",
	}
	if diff := cmp.Diff(want, r.Lines); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_LiveOnly(t *testing.T) {
	live := liveRegion()
	live.RawLastUpdate = 0
	live.Founder = "alpha"
	live.DelegateAuth = "WA"

	a := NewAssembler(plainStyles(), nil)
	r := a.Assemble(Input{Snapshot: &region.Snapshot{Live: live}})

	want := []string{
		"Report on Test Region",
		"Raidable: x",
		"Founderless: x",
		"Nations: 100",
		"Embassies: 2",
		"Officers: 3",
	}
	if diff := cmp.Diff(want, r.Lines); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_NoBadEmbassies(t *testing.T) {
	a := NewAssembler(plainStyles(), nil)
	r := a.Assemble(Input{
		Snapshot: &region.Snapshot{Live: liveRegion()},
		CDS:      []string{"elsewhere"},
	})
	assert.Contains(t, r.Lines, "CDS Embassies: 0")
	for _, l := range r.Lines {
		assert.NotContains(t, l, "Bad Embassies")
	}
}

func TestReport_String(t *testing.T) {
	r := &Report{Lines: []string{"a", "b"}}
	assert.Equal(t, "a\nb\n", r.String())
	assert.Equal(t, "", (&Report{}).String())

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestClock(t *testing.T) {
	assert.Equal(t, "0h0m0s", clock(0))
	assert.Equal(t, "1h2m3s", clock(3723))
	assert.Equal(t, "1h2m3s", clock(secondsPerDay+3723))
	assert.Equal(t, "23h0m0s", clock(-3600))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func names(records [][]string) []string {
	var out []string
	for _, r := range records[1:] {
		out = append(out, r[0])
	}
	return out
}

func TestExportRoster(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := NewExporter(dir, nil)

	paths, err := e.ExportRoster(testRoster(), []string{"Alpha"})
	require.NoError(t, err)
	require.Len(t, paths, 6)

	all := readCSV(t, filepath.Join(dir, FileLeadership))
	assert.Equal(t, Header, all[0])
	assert.Equal(t, []string{"alpha", "2", "true", "Vassal", "2500", "42"}, all[1])
	assert.Equal(t, []string{"alpha", "beta", "carol", "dave"}, names(all))

	assert.Equal(t, []string{"carol"}, names(readCSV(t, filepath.Join(dir, FileDelegateEndos))))
	assert.Equal(t, []string{"carol", "dave"}, names(readCSV(t, filepath.Join(dir, FileOfficerEndos))))
	assert.Equal(t, []string{"beta", "dave"}, names(readCSV(t, filepath.Join(dir, FileNonWA))))
	assert.Equal(t, []string{"alpha"}, names(readCSV(t, filepath.Join(dir, FileDefenderPoints))))
	assert.Equal(t, []string{"carol", "dave"}, names(readCSV(t, filepath.Join(dir, FileDefenderEndos))))
}

func TestExportRoster_FileText(t *testing.T) {
	dir := t.TempDir()
	_, err := NewExporter(dir, nil).ExportRoster(testRoster(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, FileLeadership))
	require.NoError(t, err)
	want := "name,Endos,IsWA,InfluenceLevel,SPDR,Residency\n" +
		"alpha,2,true,Vassal,2500,42\n" +
		"beta,0,false,Zero,0,0\n" +
		"carol,0,true,,0,0\n" +
		"dave,0,false,,0,0\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("DelsRO.csv mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRoster_NoDefenderPoints(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewExporter(dir, nil).ExportRoster(testRoster(), nil)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
	assert.NoFileExists(t, filepath.Join(dir, FileDefenderPoints))
}

func TestExporter_Overwrites(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)
	r := testRoster()

	_, err := e.Write(FileNonWA, r.All())
	require.NoError(t, err)
	path, err := e.Write(FileNonWA, nil)
	require.NoError(t, err)

	records := readCSV(t, path)
	assert.Len(t, records, 1, "only the header remains")
}
