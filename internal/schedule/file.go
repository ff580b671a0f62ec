package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Record is the external textual form of a booking, as it arrives from
// files and API requests.
type Record struct {
	ID         string `json:"id" toml:"id"`
	Day        string `json:"day" toml:"day"`
	Start      string `json:"start" toml:"start"`
	End        string `json:"end" toml:"end"`
	Room       string `json:"room" toml:"room"`
	Lecturer   string `json:"lecturer" toml:"lecturer"`
	CourseName string `json:"course_name,omitempty" toml:"course_name,omitempty"`
	Label      string `json:"label,omitempty" toml:"label,omitempty"`
}

// Booking validates the record and converts it.
func (r Record) Booking() (Booking, error) {
	label := r.Label
	if label == "" {
		label = r.CourseName
	}
	return ParseBooking(r.ID, r.Day, r.Start, r.End, r.Room, r.Lecturer, label)
}

// RecordOf converts a booking to its textual form.
func RecordOf(b Booking) Record {
	return Record{
		ID:         b.ID,
		Day:        b.Day,
		Start:      b.Range.StartClock(),
		End:        b.Range.EndClock(),
		Room:       b.Room,
		Lecturer:   b.Lecturer,
		CourseName: b.Label,
	}
}

type bookingFile struct {
	Bookings []Record `json:"bookings" toml:"booking"`
}

// LoadFile reads bookings from a TOML ([[booking]] tables) or JSON file.
// JSON may be either {"bookings": [...]} or a bare array.
func LoadFile(path string) ([]Booking, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading booking file: %w", err)
	}

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = decodeJSON(data)
	default:
		var f bookingFile
		err = toml.Unmarshal(data, &f)
		records = f.Bookings
	}
	if err != nil {
		return nil, fmt.Errorf("parsing booking file: %w", err)
	}

	bookings := make([]Booking, 0, len(records))
	for i, r := range records {
		b, err := r.Booking()
		if err != nil {
			return nil, fmt.Errorf("booking %d (%s): %w", i+1, r.ID, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func decodeJSON(data []byte) ([]Record, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var records []Record
		err := json.Unmarshal(data, &records)
		return records, err
	}
	var f bookingFile
	err := json.Unmarshal(data, &f)
	return f.Bookings, err
}
