// Package conflict detects room and lecturer double-bookings.
package conflict

import (
	"github.com/javiermolinar/jadwal/internal/schedule"
)

// Kind classifies a conflict by the contended resource.
type Kind string

const (
	KindRoom     Kind = "room_conflict"
	KindLecturer Kind = "lecturer_conflict"
)

// Label returns a human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindRoom:
		return "Room"
	case KindLecturer:
		return "Lecturer"
	default:
		return string(k)
	}
}

// Detail holds the kind-specific fields of a conflict.
// Room1 and Room2 are only set for lecturer conflicts.
type Detail struct {
	Day      string `json:"day"`
	Resource string `json:"resource"`
	Range1   string `json:"schedule1_time"`
	Range2   string `json:"schedule2_time"`
	Label1   string `json:"course1"`
	Label2   string `json:"course2"`
	Room1    string `json:"room1,omitempty"`
	Room2    string `json:"room2,omitempty"`
}

// Conflict is a pair of same-day overlapping bookings sharing a resource.
// Parties are in discovery order.
type Conflict struct {
	Kind    Kind
	Parties [2]schedule.Booking
	Detail  Detail
}

// Involves reports whether the booking with the given id is one of the parties.
func (c Conflict) Involves(id string) bool {
	return c.Parties[0].ID == id || c.Parties[1].ID == id
}

// Other returns the party that is not id. If id is not a party the second
// party is returned.
func (c Conflict) Other(id string) schedule.Booking {
	if c.Parties[1].ID == id {
		return c.Parties[0]
	}
	return c.Parties[1]
}

// Detect returns all room and lecturer conflicts among bookings.
//
// Bookings are grouped by day in first-occurrence order; within a day every
// booking is checked against the day's OverlapIndex in input order, and each
// unordered pair is classified once. A pair sharing both room and lecturer
// yields two conflicts. When several bookings share an ID only the first one
// takes part in detection.
func Detect(bookings []schedule.Booking) []Conflict {
	d := detection{processed: make(map[pairKey]struct{})}

	var days []string
	byDay := make(map[string][]schedule.Booking)
	seen := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		if _, ok := byDay[b.Day]; !ok {
			days = append(days, b.Day)
		}
		byDay[b.Day] = append(byDay[b.Day], b)
	}

	for _, day := range days {
		d.checkDay(day, byDay[day])
	}
	return d.conflicts
}

type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// detection is the working state of a single Detect call.
type detection struct {
	conflicts []Conflict
	processed map[pairKey]struct{}
}

func (d *detection) checkDay(day string, bookings []schedule.Booking) {
	index := NewOverlapIndex(len(bookings))
	for _, b := range bookings {
		index.Insert(b.Range, b)
	}

	for _, b := range bookings {
		for _, other := range index.Query(b.Range) {
			if other.ID == b.ID {
				continue
			}
			key := newPairKey(b.ID, other.ID)
			if _, done := d.processed[key]; done {
				continue
			}
			d.processed[key] = struct{}{}
			d.classify(day, b, other)
		}
	}
}

func (d *detection) classify(day string, first, second schedule.Booking) {
	if first.Room == second.Room {
		d.conflicts = append(d.conflicts, Conflict{
			Kind:    KindRoom,
			Parties: [2]schedule.Booking{first, second},
			Detail: Detail{
				Day:      day,
				Resource: first.Room,
				Range1:   first.Range.String(),
				Range2:   second.Range.String(),
				Label1:   first.DisplayLabel(),
				Label2:   second.DisplayLabel(),
			},
		})
	}
	if first.Lecturer == second.Lecturer {
		d.conflicts = append(d.conflicts, Conflict{
			Kind:    KindLecturer,
			Parties: [2]schedule.Booking{first, second},
			Detail: Detail{
				Day:      day,
				Resource: first.Lecturer,
				Range1:   first.Range.String(),
				Range2:   second.Range.String(),
				Label1:   first.DisplayLabel(),
				Label2:   second.DisplayLabel(),
				Room1:    first.Room,
				Room2:    second.Room,
			},
		})
	}
}

// ConflictsFor returns the conflicts that involve the booking with the given id.
func ConflictsFor(conflicts []Conflict, id string) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if c.Involves(id) {
			out = append(out, c)
		}
	}
	return out
}
