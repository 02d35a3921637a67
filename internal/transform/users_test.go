package transform

import (
	"testing"

	"github.com/quarrydata/tributary/internal/model"
)

func playEvent(userID, level string, ts int64) model.LogEvent {
	return model.LogEvent{
		UserID:    userID,
		FirstName: "Ryan",
		LastName:  "Smith",
		Gender:    "M",
		Level:     level,
		Page:      model.PageNextSong,
		TS:        ts,
	}
}

func TestUserSetLatestLevelWins(t *testing.T) {
	u := NewUserSet()
	u.Add(playEvent("26", "free", 1000))
	u.Add(playEvent("26", "paid", 3000)) // upgraded
	u.Add(playEvent("26", "free", 2000)) // older event arriving late

	rows := u.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 user, got %d", len(rows))
	}
	if rows[0].Level != "paid" {
		t.Fatalf("level = %q, want \"paid\" (latest event)", rows[0].Level)
	}
}

func TestUserSetDropsEmptyUserID(t *testing.T) {
	u := NewUserSet()
	u.Add(playEvent("", "free", 1000))
	if len(u.Rows()) != 0 {
		t.Fatal("expected no rows for empty userId")
	}
	if u.DroppedUsers != 1 {
		t.Fatalf("DroppedUsers = %d, want 1", u.DroppedUsers)
	}
}

func TestUserSetSorted(t *testing.T) {
	u := NewUserSet()
	u.Add(playEvent("30", "free", 1))
	u.Add(playEvent("12", "free", 1))
	u.Add(playEvent("26", "paid", 1))

	rows := u.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 users, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].UserID >= rows[i].UserID {
			t.Fatalf("users not sorted: %v", rows)
		}
	}
}
