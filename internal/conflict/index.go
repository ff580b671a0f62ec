package conflict

import "github.com/javiermolinar/jadwal/internal/schedule"

type entry struct {
	r schedule.TimeRange
	b schedule.Booking
}

// OverlapIndex holds the bookings of one day and answers overlap queries.
// Entries are scanned linearly in insertion order; the index keeps the
// earliest start and latest end so queries outside that span return early.
type OverlapIndex struct {
	entries  []entry
	minStart int
	maxEnd   int
}

// NewOverlapIndex creates an empty index with room for n entries.
func NewOverlapIndex(n int) *OverlapIndex {
	return &OverlapIndex{entries: make([]entry, 0, n)}
}

// Insert appends a booking under the given range.
func (x *OverlapIndex) Insert(r schedule.TimeRange, b schedule.Booking) {
	if len(x.entries) == 0 || r.Start() < x.minStart {
		x.minStart = r.Start()
	}
	if r.End() > x.maxEnd {
		x.maxEnd = r.End()
	}
	x.entries = append(x.entries, entry{r: r, b: b})
}

// Query returns every inserted booking whose range overlaps r, in insertion
// order. A booking inserted under r itself is included; callers filter it out.
func (x *OverlapIndex) Query(r schedule.TimeRange) []schedule.Booking {
	if len(x.entries) == 0 || r.End() <= x.minStart || r.Start() >= x.maxEnd {
		return nil
	}
	var out []schedule.Booking
	for _, e := range x.entries {
		if schedule.Overlaps(r, e.r) {
			out = append(out, e.b)
		}
	}
	return out
}

// Len returns the number of inserted entries.
func (x *OverlapIndex) Len() int {
	return len(x.entries)
}
