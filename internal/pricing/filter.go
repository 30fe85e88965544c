package pricing

import (
	"sort"
	"strings"
	"time"
)

// FilterRules returns the subset of a vehicle's rules applicable to a pickup
// at pickupAt for the given trip coordinates, projected into summaries and
// sorted by priority descending (stable for ties). Promo-code rules are
// excluded — they are evaluated separately at payment time. Package rules with
// missing required geo fields are skipped rather than failing the whole pass.
func FilterRules(rules []Rule, pickupAt time.Time, departure, destination *Coordinates) []RuleSummary {
	summaries := make([]RuleSummary, 0, len(rules))

	for _, r := range rules {
		switch r.Type() {
		case RuleTypeAdjustment, RuleTypePackage:
		default:
			continue
		}

		if !ruleApplies(r, pickupAt) {
			continue
		}

		if pkg, ok := r.Payload.(Package); ok {
			if !packageMatchesTrip(pkg, departure, destination) {
				continue
			}
		}

		summaries = append(summaries, summarize(r))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Priority > summaries[j].Priority
	})

	return summaries
}

// ruleApplies checks the temporal restrictions: active flag, date window,
// weekday set, hour windows and application date.
func ruleApplies(r Rule, pickupAt time.Time) bool {
	if !r.Active {
		return false
	}

	if r.StartDate != nil && pickupAt.Before(*r.StartDate) {
		return false
	}
	if r.EndDate != nil && pickupAt.After(*r.EndDate) {
		return false
	}

	if len(r.DaysOfWeek) > 0 {
		weekday := strings.ToLower(pickupAt.Weekday().String())
		if !containsString(r.DaysOfWeek, weekday) {
			return false
		}
	}

	if len(r.SpecificHours) > 0 {
		// Zero-padded "HH:MM" compares correctly as a string.
		hhmm := pickupAt.Format("15:04")
		inWindow := false
		for _, w := range r.SpecificHours {
			if hhmm >= w.Start && hhmm <= w.End {
				inWindow = true
				break
			}
		}
		if !inWindow {
			return false
		}
	}

	if r.ApplicationDate != nil {
		ay, am, ad := r.ApplicationDate.Date()
		py, pm, pd := pickupAt.Date()
		if ay != py || am != pm || ad != pd {
			return false
		}
	}

	return true
}

// packageMatchesTrip checks package geography against the trip's departure and
// destination.
func packageMatchesTrip(pkg Package, departure, destination *Coordinates) bool {
	if departure == nil || destination == nil {
		return false
	}

	switch pkg.Type {
	case PackageClassic:
		if pkg.Departure == nil || pkg.Arrival == nil {
			return false
		}
		return coordsMatch(*pkg.Departure, *departure) && coordsMatch(*pkg.Arrival, *destination)
	case PackageRadius:
		if pkg.Departure == nil || pkg.Center == nil {
			return false
		}
		if !coordsMatch(*pkg.Departure, *departure) {
			return false
		}
		return haversineKm(*destination, *pkg.Center) <= pkg.RadiusKm
	default:
		return false
	}
}

func summarize(r Rule) RuleSummary {
	s := RuleSummary{
		RuleID:          r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Type:            r.Type(),
		Priority:        r.Priority,
		AvailableToAll:  r.AvailableToAll,
		SpecificClients: r.SpecificClients,
		ExcludedClients: r.ExcludedClients,
	}

	switch p := r.Payload.(type) {
	case Adjustment:
		adj := p
		s.Adjustment = &adj
		s.ActionType = string(p.Type)
	case Package:
		pkg := p
		s.Package = &pkg
		s.ActionType = string(p.Type)
	}

	return s
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
