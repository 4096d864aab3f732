package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/securecheck/backend/internal/storage/models"
)

// tally accumulates one group of stops. keys hold the group's
// dimension values (string or int) in output order.
type tally struct {
	keys     []any
	total    int
	searched int
	arrested int
	drugs    int
	minutes  float64
	timed    int
}

func (t *tally) count(r models.StopRecord) {
	t.total++
	if r.SearchConducted {
		t.searched++
	}
	if r.IsArrested {
		t.arrested++
	}
	if r.DrugsRelatedStop {
		t.drugs++
	}
}

func (t *tally) searchRate() float64 { return Rate(t.searched, t.total) }
func (t *tally) arrestRate() float64 { return Rate(t.arrested, t.total) }
func (t *tally) drugRate() float64   { return Rate(t.drugs, t.total) }

// combined is the unrounded search rate plus arrest rate.
func (t *tally) combined() float64 {
	return float64(t.searched+t.arrested) * 100 / float64(t.total)
}

func (t *tally) avgMinutes() float64 {
	if t.timed == 0 {
		return 0
	}
	return Round2(t.minutes / float64(t.timed))
}

type grouper struct {
	index map[string]*tally
	order []*tally
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]*tally)}
}

func (g *grouper) add(r models.StopRecord, keys ...any) *tally {
	id := joinKeys(keys)
	t, ok := g.index[id]
	if !ok {
		t = &tally{keys: keys}
		g.index[id] = t
		g.order = append(g.order, t)
	}
	t.count(r)
	return t
}

// sorted returns the groups ordered by fn without touching insertion order.
func (g *grouper) sorted(fn func(a, b *tally) int) []*tally {
	out := slices.Clone(g.order)
	slices.SortFunc(out, fn)
	return out
}

func joinKeys(keys []any) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, "\x1f")
}

func compareKey(a, b any) int {
	switch x := a.(type) {
	case int:
		return cmp.Compare(x, b.(int))
	case string:
		return strings.Compare(x, b.(string))
	default:
		return 0
	}
}

func compareKeys(a, b *tally) int {
	for i := range a.keys {
		if c := compareKey(a.keys[i], b.keys[i]); c != 0 {
			return c
		}
	}
	return 0
}

func desc(metric func(*tally) float64) func(a, b *tally) int {
	return func(a, b *tally) int {
		if c := cmp.Compare(metric(b), metric(a)); c != 0 {
			return c
		}
		return compareKeys(a, b)
	}
}

func asc(metric func(*tally) float64) func(a, b *tally) int {
	return func(a, b *tally) int {
		if c := cmp.Compare(metric(a), metric(b)); c != 0 {
			return c
		}
		return compareKeys(a, b)
	}
}

func totalOf(t *tally) float64 { return float64(t.total) }

func head(groups []*tally, n int) []*tally {
	if len(groups) > n {
		return groups[:n]
	}
	return groups
}

// ranks assigns RANK() values to groups already ordered by partition and
// then by metric descending: equal metrics share a rank and the next
// distinct metric skips ahead.
func ranks(groups []*tally, partition func(*tally) string, metric func(*tally) float64) []int {
	out := make([]int, len(groups))
	start := 0
	for i, g := range groups {
		if i > 0 && partition(g) != partition(groups[i-1]) {
			start = i
		}
		if i > start && metric(g) == metric(groups[i-1]) {
			out[i] = out[i-1]
		} else {
			out[i] = i - start + 1
		}
	}
	return out
}
