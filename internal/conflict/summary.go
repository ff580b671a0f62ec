package conflict

import "sort"

// Summary aggregates a conflict list.
type Summary struct {
	Total             int      `json:"total_conflicts"`
	RoomConflicts     int      `json:"room_conflicts"`
	LecturerConflicts int      `json:"lecturer_conflicts"`
	AffectedRooms     []string `json:"affected_rooms"`
	AffectedLecturers []string `json:"affected_lecturers"`
}

// Summarize counts conflicts per kind and collects the distinct contended
// rooms and lecturers, sorted by name.
func Summarize(conflicts []Conflict) Summary {
	s := Summary{
		Total:             len(conflicts),
		AffectedRooms:     []string{},
		AffectedLecturers: []string{},
	}
	rooms := make(map[string]struct{})
	lecturers := make(map[string]struct{})

	for _, c := range conflicts {
		switch c.Kind {
		case KindRoom:
			s.RoomConflicts++
			rooms[c.Detail.Resource] = struct{}{}
		case KindLecturer:
			s.LecturerConflicts++
			lecturers[c.Detail.Resource] = struct{}{}
		}
	}

	for r := range rooms {
		s.AffectedRooms = append(s.AffectedRooms, r)
	}
	for l := range lecturers {
		s.AffectedLecturers = append(s.AffectedLecturers, l)
	}
	sort.Strings(s.AffectedRooms)
	sort.Strings(s.AffectedLecturers)
	return s
}

// HasConflicts reports whether the summary counts any conflict.
func (s Summary) HasConflicts() bool {
	return s.Total > 0
}
