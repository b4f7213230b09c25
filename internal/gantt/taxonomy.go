package gantt

import (
	"sort"

	"github.com/rpggio/precomm/internal/domain/activity"
)

// Taxonomy indexes the free-text system and subsystem tags seen in a
// snapshot. Blank values appear under Unspecified.
type Taxonomy struct {
	systems map[string]map[string]struct{}
}

// BuildTaxonomy indexes every activity's system and subsystem.
func BuildTaxonomy(acts []activity.Activity) *Taxonomy {
	t := &Taxonomy{systems: make(map[string]map[string]struct{})}
	for _, act := range acts {
		sys := groupKey(act.System)
		subs, ok := t.systems[sys]
		if !ok {
			subs = make(map[string]struct{})
			t.systems[sys] = subs
		}
		subs[groupKey(act.Subsystem)] = struct{}{}
	}
	return t
}

// Systems returns the system keys, Unspecified last.
func (t *Taxonomy) Systems() []string {
	keys := make([]string, 0, len(t.systems))
	for k := range t.systems {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Subsystems returns the subsystems of a system, Unspecified last.
func (t *Taxonomy) Subsystems(system string) []string {
	subs := t.systems[system]
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Has reports whether the pair was seen.
func (t *Taxonomy) Has(system, subsystem string) bool {
	_, ok := t.systems[system][subsystem]
	return ok
}

// TaxonomyEntry is the serializable form of one system.
type TaxonomyEntry struct {
	System     string   `json:"system"`
	Subsystems []string `json:"subsystems"`
}

// Entries flattens the index in display order.
func (t *Taxonomy) Entries() []TaxonomyEntry {
	entries := make([]TaxonomyEntry, 0, len(t.systems))
	for _, sys := range t.Systems() {
		entries = append(entries, TaxonomyEntry{System: sys, Subsystems: t.Subsystems(sys)})
	}
	return entries
}

// sortKeys orders keys alphabetically with Unspecified last.
func sortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
}

func keyLess(a, b string) bool {
	if (a == Unspecified) != (b == Unspecified) {
		return b == Unspecified
	}
	return a < b
}
