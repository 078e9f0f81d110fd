package timetable

import (
	"sort"
	"strings"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/utils"
)

// Timetable is the slot ledger for one generation cycle: an ordered sequence
// of placed blocks per day identifier. It lives for a single generation and
// is replaced wholesale on the next run.
//
// Insert does not check for overlaps; that is the caller's job. The placer
// and the free-slot search both verify IsFree before writing, which keeps the
// no-overlap invariant while still letting compulsory events be written
// unconditionally when policy requires it.
type Timetable struct {
	dayOrder []string
	days     map[string][]models.Block
}

// New builds an empty timetable with one block sequence per day, preserving
// calendar order.
func New(days []calendar.Day) *Timetable {
	t := &Timetable{
		dayOrder: make([]string, 0, len(days)),
		days:     make(map[string][]models.Block, len(days)),
	}
	for _, d := range days {
		t.dayOrder = append(t.dayOrder, d.ID)
		t.days[d.ID] = []models.Block{}
	}
	return t
}

// FromMap rebuilds a timetable from its serialized form. Day order follows
// the given day list; days absent from the map come up empty.
func FromMap(days []calendar.Day, m map[string][]models.Block) *Timetable {
	t := New(days)
	for _, d := range days {
		if blocks, ok := m[d.ID]; ok {
			t.days[d.ID] = append(t.days[d.ID], blocks...)
			t.sortDay(d.ID)
		}
	}
	return t
}

// Days returns the day identifiers in calendar order.
func (t *Timetable) Days() []string {
	return t.dayOrder
}

// Blocks returns the ordered block sequence for a day.
func (t *Timetable) Blocks(day string) []models.Block {
	return t.days[day]
}

// Map returns the timetable in its external, serializable shape.
func (t *Timetable) Map() map[string][]models.Block {
	out := make(map[string][]models.Block, len(t.days))
	for day, blocks := range t.days {
		out[day] = append([]models.Block{}, blocks...)
	}
	return out
}

// IsFree reports whether the half-open interval [startMin, endMin) does not
// intersect any existing block on the day. Two intervals intersect iff
// !(end <= other.start || start >= other.end).
func (t *Timetable) IsFree(day string, startMin, endMin int) bool {
	for _, b := range t.days[day] {
		bs, err := utils.ToMinutes(b.Start)
		if err != nil {
			continue
		}
		be, err := utils.ToMinutes(b.End)
		if err != nil {
			continue
		}
		if !(endMin <= bs || startMin >= be) {
			return false
		}
	}
	return true
}

// Insert appends a block and re-sorts the day's sequence by start time
// ascending. It does not check IsFree; callers pre-check.
func (t *Timetable) Insert(day string, startMin, endMin int, name string, kind models.BlockKind) {
	t.days[day] = append(t.days[day], models.Block{
		Start: utils.ToTimeString(utils.ClampMinutes(startMin)),
		End:   utils.ToTimeString(utils.ClampMinutes(endMin)),
		Name:  name,
		Kind:  kind,
	})
	t.sortDay(day)
}

func (t *Timetable) sortDay(day string) {
	sort.SliceStable(t.days[day], func(i, j int) bool {
		return t.days[day][i].Start < t.days[day][j].Start
	})
}

// DailyActivityMinutes sums the durations of ACTIVITY blocks on the day,
// ignoring compulsory and school load. Used to enforce the per-day activity
// ceiling.
func (t *Timetable) DailyActivityMinutes(day string) int {
	total := 0
	for _, b := range t.days[day] {
		if b.Kind != models.BlockActivity {
			continue
		}
		bs, err := utils.ToMinutes(b.Start)
		if err != nil {
			continue
		}
		be, err := utils.ToMinutes(b.End)
		if err != nil {
			continue
		}
		total += be - bs
	}
	return total
}

// RemoveByName removes every ACTIVITY block belonging to the named activity
// from every day: the bare name plus any "name (Session N)" variants.
func (t *Timetable) RemoveByName(name string) int {
	removed := 0
	sessionPrefix := name + " (Session"
	for day, blocks := range t.days {
		kept := blocks[:0]
		for _, b := range blocks {
			if b.Kind == models.BlockActivity && (b.Name == name || strings.HasPrefix(b.Name, sessionPrefix)) {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		t.days[day] = kept
	}
	return removed
}
