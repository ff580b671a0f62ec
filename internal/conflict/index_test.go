package conflict

import (
	"testing"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

func TestOverlapIndex_Query(t *testing.T) {
	index := NewOverlapIndex(4)
	bookings := []schedule.Booking{
		mustBooking(t, "A", "Senin", "08:00", "10:00", "R", "L"),
		mustBooking(t, "B", "Senin", "09:00", "11:00", "R", "L"),
		mustBooking(t, "C", "Senin", "11:00", "12:00", "R", "L"),
		mustBooking(t, "D", "Senin", "07:00", "08:30", "R", "L"),
	}
	for _, b := range bookings {
		index.Insert(b.Range, b)
	}

	tests := []struct {
		name  string
		query schedule.TimeRange
		want  []string
	}{
		{name: "includes self and insertion order", query: schedule.MustTimeRange("08:00", "10:00"), want: []string{"A", "B", "D"}},
		{name: "touching excluded", query: schedule.MustTimeRange("12:00", "13:00"), want: nil},
		{name: "before all", query: schedule.MustTimeRange("05:00", "07:00"), want: nil},
		{name: "spans all", query: schedule.MustTimeRange("00:00", "24:00"), want: []string{"A", "B", "C", "D"}},
		{name: "gap between", query: schedule.MustTimeRange("10:30", "11:00"), want: []string{"B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := index.Query(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Query(%s) returned %d bookings, want %d", tt.query, len(got), len(tt.want))
			}
			for i, b := range got {
				if b.ID != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, b.ID, tt.want[i])
				}
			}
		})
	}

	if index.Len() != 4 {
		t.Errorf("Len() = %d, want 4", index.Len())
	}
}

func TestOverlapIndex_Empty(t *testing.T) {
	index := NewOverlapIndex(0)
	if got := index.Query(schedule.MustTimeRange("00:00", "24:00")); got != nil {
		t.Errorf("empty index returned %v", got)
	}
}
