// Package shuffle produces the deterministic ordering a split is computed
// from. Units are sorted canonically first, then permuted with a generator
// seeded fresh for every call, so the result depends only on the seed and
// the input set, never on readdir order or on which class was processed
// before.
package shuffle

import (
	"math/rand"
	"sort"

	"github.com/danieljhkim/datasplit/internal/planner"
)

// Units shuffles units in place. Same seed and same unit set yield the
// identical permutation on every call.
func Units(units []planner.Unit, seed int64) {
	sort.Slice(units, func(i, j int) bool {
		return units[i].Key() < units[j].Key()
	})

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(units), func(i, j int) {
		units[i], units[j] = units[j], units[i]
	})
}
