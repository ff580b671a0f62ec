// Package summary aggregates weekly timetable load.
package summary

import (
	"sort"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// DayLoad holds statistics for a single day.
type DayLoad struct {
	Day      string `json:"day"`
	Bookings int    `json:"bookings"`
	Minutes  int    `json:"minutes"`
}

// RoomLoad holds the booked minutes of one room across the week.
type RoomLoad struct {
	Room     string `json:"room"`
	Bookings int    `json:"bookings"`
	Minutes  int    `json:"minutes"`
}

// Week aggregates bookings by day and by room.
type Week struct {
	Days       []DayLoad  `json:"days"`
	Rooms      []RoomLoad `json:"rooms"`
	BusiestDay string     `json:"busiest_day,omitempty"`
}

// TotalMinutes returns the booked minutes across all days.
func (w Week) TotalMinutes() int {
	total := 0
	for _, d := range w.Days {
		total += d.Minutes
	}
	return total
}

// Day returns the load for day, or a zero DayLoad if nothing is booked.
func (w Week) Day(day string) DayLoad {
	for _, d := range w.Days {
		if d.Day == day {
			return d
		}
	}
	return DayLoad{Day: day}
}

// Utilization summarizes bookings. Days keep first-occurrence order, rooms
// are sorted by name. The busiest day has the most booked minutes; ties go
// to the day seen first.
func Utilization(bookings []schedule.Booking) Week {
	w := Week{Days: []DayLoad{}, Rooms: []RoomLoad{}}

	dayIdx := make(map[string]int)
	roomIdx := make(map[string]int)
	for _, b := range bookings {
		i, ok := dayIdx[b.Day]
		if !ok {
			i = len(w.Days)
			dayIdx[b.Day] = i
			w.Days = append(w.Days, DayLoad{Day: b.Day})
		}
		w.Days[i].Bookings++
		w.Days[i].Minutes += b.Range.Minutes()

		j, ok := roomIdx[b.Room]
		if !ok {
			j = len(w.Rooms)
			roomIdx[b.Room] = j
			w.Rooms = append(w.Rooms, RoomLoad{Room: b.Room})
		}
		w.Rooms[j].Bookings++
		w.Rooms[j].Minutes += b.Range.Minutes()
	}

	sort.Slice(w.Rooms, func(i, j int) bool { return w.Rooms[i].Room < w.Rooms[j].Room })

	best := -1
	for _, d := range w.Days {
		if d.Minutes > best {
			best = d.Minutes
			w.BusiestDay = d.Day
		}
	}
	return w
}
