package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"goldeneye/internal/enrich"
)

// Export file names.
const (
	FileLeadership     = "DelsRO.csv"
	FileDelegateEndos  = "DelEndos.csv"
	FileOfficerEndos   = "ROEndos.csv"
	FileNonWA          = "NonWA.csv"
	FileDefenderPoints = "DefenderPoints.csv"
	FileDefenderEndos  = "DefenderEndos.csv"
)

// Header is the fixed column header of every export.
var Header = []string{"name", "Endos", "IsWA", "InfluenceLevel", "SPDR", "Residency"}

// Exporter writes CSV files into a directory.
type Exporter struct {
	dir    string
	logger *zap.Logger
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dir: dir, logger: logger}
}

// Row is the CSV record of one member.
func Row(m enrich.Member) []string {
	n := m.Nation
	return []string{
		n.DisplayName,
		strconv.Itoa(n.EndorsementCount()),
		strconv.FormatBool(n.IsWA()),
		n.InfluenceLevel,
		strconv.Itoa(n.Influence()),
		strconv.Itoa(n.Residency()),
	}
}

// Write writes members to name, replacing any existing file, and returns the path.
func (e *Exporter) Write(name string, members []enrich.Member) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	for _, m := range members {
		if err := w.Write(Row(m)); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	e.logger.Info("CSV written", zap.String("file", path), zap.Int("rows", len(members)))
	return path, nil
}

type export struct {
	name    string
	members []enrich.Member
}

// ExportRoster writes the four roster exports and, when points is not empty,
// the two defender exports. It returns the written paths in order.
func (e *Exporter) ExportRoster(r *enrich.Roster, points []string) ([]string, error) {
	all := r.All()
	files := []export{
		{FileLeadership, all},
		{FileDelegateEndos, r.Filter(func(m enrich.Member) bool { return m.Annotation.EndorsingDelegate })},
		{FileOfficerEndos, r.Filter(func(m enrich.Member) bool { return m.Annotation.EndorsingOfficers })},
		{FileNonWA, r.Filter(func(m enrich.Member) bool { return !m.Nation.IsWA() })},
	}
	if len(points) > 0 {
		selected, endorsers := enrich.DefenderSelection(all, points)
		files = append(files, export{FileDefenderPoints, selected}, export{FileDefenderEndos, endorsers})
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := e.Write(f.name, f.members)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
