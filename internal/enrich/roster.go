package enrich

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"goldeneye/internal/nsapi"
)

// Role is the position a scanned nation holds in the region.
type Role int

const (
	RoleResident Role = iota
	RoleDelegate
	RoleOfficer
)

func (r Role) String() string {
	switch r {
	case RoleDelegate:
		return "delegate"
	case RoleOfficer:
		return "officer"
	default:
		return "resident"
	}
}

// Annotation holds the endorsement relationships found by the full scan.
type Annotation struct {
	EndorsingDelegate bool
	EndorsingOfficers bool
}

// Member pairs a fetched nation with its role, authority and annotation.
type Member struct {
	Nation     *nsapi.Nation
	Role       Role
	Authority  string
	Annotation Annotation
}

// Assess computes the member's metrics against t.
func (m Member) Assess(t Thresholds) Assessment {
	return Assess(m.Nation, m.Authority, t)
}

// Roster is the result of a scan, in scan order.
type Roster struct {
	Delegate  *Member
	Officers  []Member
	Residents []Member

	// ScanErr is set when the full roster scan stopped early. Members found
	// before the failure are kept.
	ScanErr error
}

// Leadership returns the delegate (if any) followed by officers in roster order.
func (r *Roster) Leadership() []Member {
	out := make([]Member, 0, len(r.Officers)+1)
	if r.Delegate != nil {
		out = append(out, *r.Delegate)
	}
	return append(out, r.Officers...)
}

// All returns leadership followed by residents.
func (r *Roster) All() []Member {
	return append(r.Leadership(), r.Residents...)
}

// Filter returns the members of All that satisfy keep.
func (r *Roster) Filter(keep func(Member) bool) []Member {
	var out []Member
	for _, m := range r.All() {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// Scan enriches the delegate and then every active officer. With full set, it
// continues through every roster nation not yet scanned and annotates each
// with its endorsement relationships. Failures in the leadership phase are
// returned; failures in the full phase end that phase and are recorded in
// Roster.ScanErr.
func (e *Enricher) Scan(ctx context.Context, region *nsapi.Region, full bool) (*Roster, error) {
	roster := &Roster{}

	if d := strings.TrimSpace(region.Delegate); d != "" && d != "0" {
		e.logger.Info("Processing delegate", zap.String("nation", region.Delegate))
		n, ok, err := e.Enrich(ctx, region.Delegate)
		if err != nil {
			return nil, err
		}
		if ok {
			roster.Delegate = &Member{Nation: n, Role: RoleDelegate, Authority: region.DelegateAuth}
		}
	}

	e.logger.Info("Processing officers", zap.Int("count", len(region.ActiveOfficers())))
	for _, o := range region.ActiveOfficers() {
		n, ok, err := e.Enrich(ctx, o.Nation)
		if err != nil {
			return nil, err
		}
		if ok {
			roster.Officers = append(roster.Officers, Member{Nation: n, Role: RoleOfficer, Authority: o.Authority})
		}
	}

	if full {
		e.logger.Info("Generating full report")
		if err := e.scanResidents(ctx, region, roster); err != nil {
			e.logger.Error("Full roster scan stopped early", zap.Error(err), zap.Int("scanned", len(roster.Residents)))
			roster.ScanErr = err
		}
	}
	return roster, nil
}

func (e *Enricher) scanResidents(ctx context.Context, region *nsapi.Region, roster *Roster) error {
	leadership := roster.Leadership()

	corps := nsapi.NewNameSet()
	// Leaders the API had no data for are not retried.
	scanned := nsapi.NewNameSet(region.Delegate)
	for _, o := range region.ActiveOfficers() {
		scanned.Add(o.Nation)
	}
	for _, m := range leadership {
		corps.Add(m.Nation.Endorsements()...)
		scanned.Add(m.Nation.DisplayName)
	}
	delegateEndos := nsapi.NewNameSet()
	if roster.Delegate != nil {
		delegateEndos.Add(roster.Delegate.Nation.Endorsements()...)
	}

	for _, name := range region.Nations() {
		if scanned.Has(name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		n, ok, err := e.Enrich(ctx, name)
		if err != nil {
			return err
		}
		scanned.Add(name)
		if !ok {
			continue
		}
		roster.Residents = append(roster.Residents, Member{
			Nation: n,
			Role:   RoleResident,
			Annotation: Annotation{
				EndorsingDelegate: delegateEndos.Has(name),
				EndorsingOfficers: corps.Has(name),
			},
		})
	}
	return nil
}

// DefenderSelection returns the members named in points and the members
// endorsing any of them.
func DefenderSelection(members []Member, points []string) (selected, endorsers []Member) {
	want := nsapi.NewNameSet(points...)
	endorsed := nsapi.NewNameSet()
	for _, m := range members {
		if want.Has(m.Nation.DisplayName) {
			selected = append(selected, m)
			endorsed.Add(m.Nation.Endorsements()...)
		}
	}
	for _, m := range members {
		if endorsed.Has(m.Nation.DisplayName) {
			endorsers = append(endorsers, m)
		}
	}
	return selected, endorsers
}
