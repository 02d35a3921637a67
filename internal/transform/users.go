package transform

import (
	"sort"

	"github.com/quarrydata/tributary/internal/model"
)

// UserSet accumulates play events into the users dimension, one row per
// user_id. The row from the user's most recent event wins, so the table
// reflects the current subscription level after free/paid changes.
type UserSet struct {
	users map[string]userEntry

	// DroppedUsers counts events without a userId (logged-out plays).
	DroppedUsers int
}

type userEntry struct {
	row model.UserRow
	ts  int64
}

// NewUserSet creates an empty UserSet.
func NewUserSet() *UserSet {
	return &UserSet{users: make(map[string]userEntry)}
}

// Add folds one play event into the users dimension.
func (u *UserSet) Add(ev model.LogEvent) {
	if ev.UserID == "" {
		u.DroppedUsers++
		return
	}
	if cur, seen := u.users[ev.UserID]; seen && cur.ts >= ev.TS {
		return
	}
	u.users[ev.UserID] = userEntry{
		row: model.UserRow{
			UserID:    ev.UserID,
			FirstName: ev.FirstName,
			LastName:  ev.LastName,
			Gender:    ev.Gender,
			Level:     ev.Level,
		},
		ts: ev.TS,
	}
}

// Rows returns the users dimension sorted ascending by user_id.
func (u *UserSet) Rows() []model.UserRow {
	rows := make([]model.UserRow, 0, len(u.users))
	for _, e := range u.users {
		rows = append(rows, e.row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })
	return rows
}
