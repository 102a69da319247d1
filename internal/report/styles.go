package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"goldeneye/internal/diff"
)

// Report palette.
var (
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Destructive = lipgloss.Color("#e53935") // Red
	Info        = lipgloss.Color("#2196F3") // Blue
	Warning     = lipgloss.Color("#FFC107") // Yellow
)

// Glyphs used in report lines.
const (
	CheckGlyph    = "✓"
	CrossGlyph    = "x"
	IncreaseGlyph = "↑"
	FlatGlyph     = "→"
	DecreaseGlyph = "↓"
)

// Styles renders the inline markers. Colour is decided by the renderer's
// output, so a report written to a pipe or buffer is plain text.
type Styles struct {
	Title    lipgloss.Style
	Check    lipgloss.Style
	Cross    lipgloss.Style
	Increase lipgloss.Style
	Flat     lipgloss.Style
	Decrease lipgloss.Style
}

// NewStyles builds styles bound to the terminal behind w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:    r.NewStyle().Foreground(Warning).Bold(true),
		Check:    r.NewStyle().Foreground(Success),
		Cross:    r.NewStyle().Foreground(Destructive),
		Increase: r.NewStyle().Foreground(Success),
		Flat:     r.NewStyle().Foreground(Info),
		Decrease: r.NewStyle().Foreground(Destructive),
	}
}

// Mark renders a check or a cross.
func (s Styles) Mark(ok bool) string {
	if ok {
		return s.Check.Render(CheckGlyph)
	}
	return s.Cross.Render(CrossGlyph)
}

// Arrow renders the trend marker.
func (s Styles) Arrow(t diff.Trend) string {
	switch t {
	case diff.Increase:
		return s.Increase.Render(IncreaseGlyph)
	case diff.Decrease:
		return s.Decrease.Render(DecreaseGlyph)
	default:
		return s.Flat.Render(FlatGlyph)
	}
}
