// Package report renders a scan as an ordered list of console lines and
// writes the CSV exports of a full roster scan.
package report

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"goldeneye/internal/cds"
	"goldeneye/internal/diff"
	"goldeneye/internal/enrich"
	"goldeneye/internal/nsapi"
	"goldeneye/internal/region"
)

const secondsPerDay = 86400

// Input is everything the assembler reads.
type Input struct {
	Snapshot *region.Snapshot
	Roster   *enrich.Roster

	// CDS is the extracted region list. Nil when the cross-reference was
	// not requested.
	CDS []string
}

// Report is the assembled console output.
type Report struct {
	Lines []string
}

// String joins the lines, newline terminated.
func (r *Report) String() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// WriteTo writes the report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Assembler builds reports.
type Assembler struct {
	styles Styles
	logger *zap.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(styles Styles, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{styles: styles, logger: logger}
}

// Assemble renders in. Region metrics are diffed when the snapshot carries a
// prior record; otherwise each shows the live value alone.
func (a *Assembler) Assemble(in Input) *Report {
	live, prior := in.Snapshot.Live, in.Snapshot.Prior
	r := &Report{}
	add := func(format string, args ...any) {
		r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
	}

	add("Report on %s", a.styles.Title.Render(live.DisplayName))
	add("Raidable: %s", a.styles.Mark(live.IsRaidable()))
	add("Founderless: %s", a.styles.Mark(live.IsFounderless()))
	if live.RawLastUpdate != 0 {
		add("Last update: %s into update", clock(live.LastUpdate()))
	}

	r.Lines = append(r.Lines, a.metric(diff.NewMetric("Nations", priorInt(prior, func(p *nsapi.Region) int {
		return p.NumNations
	}), live.NumNations)))
	if prior != nil {
		roster := diff.Churn(prior.Nations(), live.Nations())
		add("Arrivals: %d", len(roster.Added))
		add("Departures: %d", len(roster.Removed))
	}

	r.Lines = append(r.Lines, a.metric(diff.NewMetric("Embassies", priorInt(prior, func(p *nsapi.Region) int {
		return len(p.Embassies)
	}), len(live.Embassies))))
	if prior != nil {
		embassies := diff.Churn(prior.Embassies, live.Embassies)
		if len(embassies.Added) > 0 {
			add("New embassies: %s", strings.Join(embassies.Added, " "))
		}
		if len(embassies.Removed) > 0 {
			add("Closed embassies: %s", strings.Join(embassies.Removed, " "))
		}
	}

	if in.CDS != nil {
		current := cds.Classify(live.Embassies, in.CDS)
		r.Lines = append(r.Lines, a.metric(diff.NewMetric("CDS Embassies", priorInt(prior, func(p *nsapi.Region) int {
			return cds.Classify(p.Embassies, in.CDS).Count
		}), current.Count)))
		if current.Count > 0 {
			add("Bad Embassies: %s", strings.Join(current.Names, " "))
		}
	}

	r.Lines = append(r.Lines, a.metric(diff.NewMetric("Officers", priorInt(prior, func(p *nsapi.Region) int {
		return len(p.ActiveOfficers())
	}), len(live.ActiveOfficers()))))

	if in.Roster != nil {
		thresholds := enrich.ThresholdsFor(live.NumNations)
		upper := cases.Upper(language.Und)
		for _, m := range in.Roster.Leadership() {
			r.Lines = append(r.Lines, a.nationLine(upper, m, thresholds))
		}
	}

	a.logger.Debug("Report assembled", zap.String("region", live.Name()), zap.Int("lines", len(r.Lines)))
	return r
}

func (a *Assembler) metric(m diff.Metric) string {
	if !m.Compared() {
		return fmt.Sprintf("%s: %d", m.Label, m.Current)
	}
	d := m.Delta
	return fmt.Sprintf("%s: %d %s %d (Net %+d)", m.Label, d.Prior, a.styles.Arrow(d.Trend), d.Current, d.Net)
}

func (a *Assembler) nationLine(upper cases.Caser, m enrich.Member, t enrich.Thresholds) string {
	as := m.Assess(t)
	return fmt.Sprintf("%s %s - BC: %s - WA: %s - Endos: %d - Influence: %d - PW:%s%s",
		upper.String(m.Nation.InfluenceLevel),
		m.Nation.DisplayName,
		a.styles.Mark(as.BorderControl),
		a.styles.Mark(m.Nation.IsWA()),
		m.Nation.EndorsementCount(),
		as.Influence,
		a.styles.Mark(as.Visible),
		a.styles.Mark(as.Invisible),
	)
}

func priorInt(prior *nsapi.Region, count func(*nsapi.Region) int) *int {
	if prior == nil {
		return nil
	}
	v := count(prior)
	return &v
}

// clock formats seconds into the update cycle as 1h2m3s.
func clock(seconds float64) string {
	s := int64(seconds) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return fmt.Sprintf("%dh%dm%ds", s/3600, s%3600/60, s%60)
}
