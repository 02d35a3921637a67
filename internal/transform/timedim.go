package transform

import (
	"sort"
	"time"

	"github.com/quarrydata/tributary/internal/model"
)

// DeriveTime expands an epoch-millisecond play timestamp into a time
// dimension row. All fields are UTC. Weekday uses the 1=Sunday..7=Saturday
// convention; week is the ISO week number.
func DeriveTime(tsMillis int64) model.TimeRow {
	t := time.UnixMilli(tsMillis).UTC()
	_, week := t.ISOWeek()
	return model.TimeRow{
		StartTime: tsMillis,
		Hour:      int32(t.Hour()),
		Day:       int32(t.Day()),
		Week:      int32(week),
		Month:     int32(t.Month()),
		Year:      int32(t.Year()),
		Weekday:   int32(t.Weekday()) + 1,
	}
}

// TimeSet accumulates play timestamps into the time dimension, one row
// per distinct start_time.
type TimeSet struct {
	rows map[int64]model.TimeRow
}

// NewTimeSet creates an empty TimeSet.
func NewTimeSet() *TimeSet {
	return &TimeSet{rows: make(map[int64]model.TimeRow)}
}

// Add records the timestamp of one play event. Zero timestamps are
// rejected (the caller counts them).
func (s *TimeSet) Add(tsMillis int64) bool {
	if tsMillis <= 0 {
		return false
	}
	if _, seen := s.rows[tsMillis]; !seen {
		s.rows[tsMillis] = DeriveTime(tsMillis)
	}
	return true
}

// Rows returns the time dimension sorted ascending by start_time.
func (s *TimeSet) Rows() []model.TimeRow {
	rows := make([]model.TimeRow, 0, len(s.rows))
	for _, row := range s.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StartTime < rows[j].StartTime })
	return rows
}
