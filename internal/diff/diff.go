// Package diff compares a region metric between the data dump and the live
// API, and computes name churn between two rosters using the sergi/go-diff
// line differ.
package diff

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"goldeneye/internal/nsapi"
)

// Trend classifies the sign of a delta.
type Trend int

const (
	Decrease Trend = -1
	Flat     Trend = 0
	Increase Trend = 1
)

func (t Trend) String() string {
	switch t {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "flat"
	}
}

// Delta is the comparison of one metric.
type Delta struct {
	Prior   int
	Current int
	Net     int
	Trend   Trend
}

// Compute returns current - prior and its trend. Both operands must have been
// counted under the same filtering rules.
func Compute(prior, current int) Delta {
	net := current - prior
	trend := Flat
	switch {
	case net > 0:
		trend = Increase
	case net < 0:
		trend = Decrease
	}
	return Delta{Prior: prior, Current: current, Net: net, Trend: trend}
}

// Metric is a labelled value that is diffed when a prior value exists.
type Metric struct {
	Label   string
	Current int
	Delta   *Delta
}

// NewMetric builds a Metric. prior is nil when comparison is disabled.
func NewMetric(label string, prior *int, current int) Metric {
	m := Metric{Label: label, Current: current}
	if prior != nil {
		d := Compute(*prior, current)
		m.Delta = &d
	}
	return m
}

// Compared reports whether the metric carries a delta.
func (m Metric) Compared() bool { return m.Delta != nil }

// ChurnSet lists names present on only one side.
type ChurnSet struct {
	Added   []string
	Removed []string
}

// Empty reports whether nothing changed.
func (c ChurnSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Churn returns the normalized names in current but not prior (Added) and in
// prior but not current (Removed). Both results are sorted and deduplicated.
func Churn(prior, current []string) ChurnSet {
	before := sortedUnique(prior)
	after := sortedUnique(current)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	a, b, lines := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := nsapi.NewNameSet()
	removed := nsapi.NewNameSet()
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added.Add(splitLines(d.Text)...)
		case diffmatchpatch.DiffDelete:
			removed.Add(splitLines(d.Text)...)
		}
	}

	var out ChurnSet
	for name := range added {
		if !removed.Has(name) {
			out.Added = append(out.Added, name)
		}
	}
	for name := range removed {
		if !added.Has(name) {
			out.Removed = append(out.Removed, name)
		}
	}
	sort.Strings(out.Added)
	sort.Strings(out.Removed)
	return out
}

func sortedUnique(names []string) []string {
	set := nsapi.NewNameSet(names...)
	out := make([]string, 0, set.Len())
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// joinLines terminates every name with a newline so the last line compares
// equal to the others.
func joinLines(names []string) string {
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(n)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return r == '\n' })
}
