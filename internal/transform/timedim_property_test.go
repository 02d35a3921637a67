package transform

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestDeriveTimeConsistency verifies that every derived field agrees with
// the stdlib's reading of the same instant, for arbitrary timestamps
// between 2000 and 2100.
func TestDeriveTimeConsistency(t *testing.T) {
	lo := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	hi := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	rapid.Check(t, func(rt *rapid.T) {
		ts := rapid.Int64Range(lo, hi).Draw(rt, "ts")
		row := DeriveTime(ts)
		want := time.UnixMilli(ts).UTC()

		if row.StartTime != ts {
			rt.Fatalf("StartTime = %d, want %d", row.StartTime, ts)
		}
		if int(row.Hour) != want.Hour() {
			rt.Fatalf("Hour = %d, want %d", row.Hour, want.Hour())
		}
		if int(row.Day) != want.Day() {
			rt.Fatalf("Day = %d, want %d", row.Day, want.Day())
		}
		if int(row.Month) != int(want.Month()) {
			rt.Fatalf("Month = %d, want %d", row.Month, want.Month())
		}
		if int(row.Year) != want.Year() {
			rt.Fatalf("Year = %d, want %d", row.Year, want.Year())
		}
		_, wantWeek := want.ISOWeek()
		if int(row.Week) != wantWeek {
			rt.Fatalf("Week = %d, want %d", row.Week, wantWeek)
		}
		if row.Weekday < 1 || row.Weekday > 7 {
			rt.Fatalf("Weekday = %d, outside 1..7", row.Weekday)
		}
		if int(row.Weekday) != int(want.Weekday())+1 {
			rt.Fatalf("Weekday = %d, want %d", row.Weekday, int(want.Weekday())+1)
		}
	})
}
