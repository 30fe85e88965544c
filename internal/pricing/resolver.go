package pricing

// ResolveOverrides walks priority tiers from highest to lowest, accumulating
// every rule of each tier, and stops after the first tier that contains an
// available-to-all rule. A universal rule closes the list: lower-priority
// tiers could never apply ahead of it. If no tier has a universal rule, all
// tiers are included.
//
// Input must already be sorted by priority descending (FilterRules output);
// relative order within a tier is preserved.
func ResolveOverrides(filtered []RuleSummary) []RuleSummary {
	if len(filtered) == 0 {
		return nil
	}

	resolved := make([]RuleSummary, 0, len(filtered))

	i := 0
	for i < len(filtered) {
		tierPriority := filtered[i].Priority
		tierHasUniversal := false

		for i < len(filtered) && filtered[i].Priority == tierPriority {
			resolved = append(resolved, filtered[i])
			if filtered[i].AvailableToAll {
				tierHasUniversal = true
			}
			i++
		}

		if tierHasUniversal {
			break
		}
	}

	return resolved
}
