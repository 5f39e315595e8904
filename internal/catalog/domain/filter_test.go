package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRecords() []ProjectRecord {
	return []ProjectRecord{
		{ID: "1", Title: "Chatbot", Domain: "AI", Language: "Python"},
		{ID: "2", Title: "Shop", Domain: "Web", Language: "Java"},
	}
}

func ids(records []ProjectRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func randomRecords(rng *rand.Rand, n int) []ProjectRecord {
	domains := []string{"AI", "Web", "IoT"}
	languages := []string{"Python", "Java"}
	out := make([]ProjectRecord, n)
	for i := range out {
		out[i] = ProjectRecord{
			ID:       fmt.Sprintf("p%03d", i),
			Title:    fmt.Sprintf("Project %d", i),
			Domain:   domains[rng.Intn(len(domains))],
			Language: languages[rng.Intn(len(languages))],
		}
	}
	return out
}

func TestFilterCatalog_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
		want  []string
	}{
		{"both wildcards", NewFilterState(), []string{"1", "2"}},
		{"domain only", FilterState{Domain: "AI", Language: Wildcard}, []string{"1"}},
		{"domain absent from data", FilterState{Domain: "IoT", Language: Wildcard}, []string{}},
		{"domain matches but language does not", FilterState{Domain: "Web", Language: "Python"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCatalog(scenarioRecords(), tt.state)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterCatalog_EmptyInput(t *testing.T) {
	got := FilterCatalog(nil, NewFilterState())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterCatalog_ArbitraryValuesYieldNoMatch(t *testing.T) {
	for _, v := range []string{"", "ai", "web ", "Rust", "*"} {
		got := FilterCatalog(scenarioRecords(), FilterState{Domain: v, Language: Wildcard})
		assert.Empty(t, got, "domain %q", v)
	}
}

func TestFilterCatalog_DoesNotMutateInput(t *testing.T) {
	records := scenarioRecords()
	before := append([]ProjectRecord(nil), records...)

	got := FilterCatalog(records, NewFilterState())
	got[0].Title = "changed"

	if diff := cmp.Diff(before, records); diff != "" {
		t.Fatalf("input changed (-want +got):\n%s", diff)
	}
}

func TestFilterCatalog_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 25; round++ {
		records := randomRecords(rng, rng.Intn(40))

		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			all := FilterCatalog(records, NewFilterState())
			if diff := cmp.Diff(records, all); diff != "" {
				t.Fatalf("wildcard result differs (-want +got):\n%s", diff)
			}

			missing := FilterState{Domain: "Blockchain"}
			for _, lang := range []string{Wildcard, "Python", "Java", "Go"} {
				assert.Empty(t, FilterCatalog(records, missing.WithLanguage(lang)))
			}

			for _, state := range DefaultFilterOptions().States() {
				first := FilterCatalog(records, state)
				second := FilterCatalog(records, state)
				if diff := cmp.Diff(first, second); diff != "" {
					t.Fatalf("not idempotent for %+v:\n%s", state, diff)
				}
				assertSubsequence(t, records, first)
			}
		})
	}
}

func TestFilterCatalog_LanguagePartitions(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	records := randomRecords(rng, 60)
	opts := DefaultFilterOptions()

	for _, d := range opts.Domains {
		domainOnly := FilterCatalog(records, FilterState{Domain: d, Language: Wildcard})

		seen := make(map[string]string)
		for _, l := range opts.Languages[1:] {
			for _, r := range FilterCatalog(records, FilterState{Domain: d, Language: l}) {
				prev, dup := seen[r.ID]
				require.False(t, dup, "record %s in partitions %s and %s", r.ID, prev, l)
				seen[r.ID] = l
			}
		}

		assert.Len(t, seen, len(domainOnly), "domain %s", d)
		for _, r := range domainOnly {
			assert.Contains(t, seen, r.ID)
		}
	}
}

func TestFilterState_ChangesAreIndependent(t *testing.T) {
	s := NewFilterState()
	assert.Equal(t, FilterState{Domain: Wildcard, Language: Wildcard}, s)

	s = s.WithDomain("AI")
	assert.Equal(t, "AI", s.Domain)
	assert.Equal(t, Wildcard, s.Language)

	s = s.WithLanguage("Java")
	assert.Equal(t, "AI", s.Domain)
	assert.Equal(t, "Java", s.Language)

	other := NewFilterState().WithLanguage("Java").WithDomain("AI")
	assert.Equal(t, s, other)
}

func TestFilterState_Normalize(t *testing.T) {
	got := FilterState{Domain: "  ", Language: " Python "}.Normalize()
	assert.Equal(t, FilterState{Domain: Wildcard, Language: "Python"}, got)

	got = FilterState{Domain: "ai"}.Normalize()
	assert.Equal(t, "ai", got.Domain)
	assert.False(t, got.IsWildcard())
	assert.True(t, FilterState{}.Normalize().IsWildcard())
}

// assertSubsequence checks sub appears in full in the same relative order.
func assertSubsequence(t *testing.T, full, sub []ProjectRecord) {
	t.Helper()
	i := 0
	for _, r := range full {
		if i < len(sub) && sub[i].ID == r.ID {
			i++
		}
	}
	assert.Equal(t, len(sub), i, "result is not an ordered subsequence")
}
