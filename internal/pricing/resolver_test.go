package pricing

import "testing"

func summary(name string, priority int, all bool) RuleSummary {
	return RuleSummary{Name: name, Priority: priority, AvailableToAll: all}
}

func TestResolveOverrides(t *testing.T) {
	tests := []struct {
		name  string
		input []RuleSummary
		want  []string
	}{
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
		{
			name: "stops after tier with universal rule",
			input: []RuleSummary{
				summary("p3", 3, false),
				summary("p2", 2, true),
				summary("p1", 1, false),
			},
			want: []string{"p3", "p2"},
		},
		{
			name: "no universal rule keeps all tiers",
			input: []RuleSummary{
				summary("p3", 3, false),
				summary("p2", 2, false),
				summary("p1", 1, false),
			},
			want: []string{"p3", "p2", "p1"},
		},
		{
			name: "universal in top tier keeps whole tier only",
			input: []RuleSummary{
				summary("p5-a", 5, false),
				summary("p5-b", 5, true),
				summary("p2", 2, false),
			},
			want: []string{"p5-a", "p5-b"},
		},
		{
			name: "tier fully accumulated even after universal rule seen",
			input: []RuleSummary{
				summary("p4-a", 4, true),
				summary("p4-b", 4, false),
				summary("p1", 1, true),
			},
			want: []string{"p4-a", "p4-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOverrides(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rules, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Name != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, s.Name, tt.want[i])
				}
			}
		})
	}
}

// The resolver result must be a contiguous prefix of priority tiers, and if it
// stopped early the last included tier must contain the universal rule.
func TestResolveOverrides_PrefixProperty(t *testing.T) {
	input := []RuleSummary{
		summary("p9", 9, false),
		summary("p7-a", 7, false),
		summary("p7-b", 7, true),
		summary("p4", 4, true),
		summary("p1", 1, false),
	}

	got := ResolveOverrides(input)

	for i, s := range got {
		if s.Name != input[i].Name {
			t.Fatalf("result is not a prefix of the input at index %d", i)
		}
	}

	last := got[len(got)-1]
	hasUniversal := false
	for _, s := range got {
		if s.Priority == last.Priority && s.AvailableToAll {
			hasUniversal = true
		}
	}
	if len(got) < len(input) && !hasUniversal {
		t.Errorf("resolver stopped early but last tier has no available-to-all rule")
	}
}
