package extract

import (
	"strings"
	"testing"
)

const songJSON = `{"num_songs": 1, "artist_id": "ARJIE2Y1187B994AB7", "artist_latitude": null, "artist_longitude": null, "artist_location": "", "artist_name": "Line Renaud", "song_id": "SOUPIRU12A6D4FA1E1", "title": "Der Kleine Dompfaff", "duration": 152.92036, "year": 0}`

func TestDecodeSongsSingle(t *testing.T) {
	records, malformed, err := DecodeSongs(strings.NewReader(songJSON))
	if err != nil {
		t.Fatal(err)
	}
	if malformed != 0 {
		t.Fatalf("malformed = %d, want 0", malformed)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.SongID != "SOUPIRU12A6D4FA1E1" || rec.ArtistID != "ARJIE2Y1187B994AB7" {
		t.Fatalf("unexpected ids: %+v", rec)
	}
	if rec.ArtistLatitude != nil {
		t.Fatal("expected nil latitude for null")
	}
	if rec.Duration != 152.92036 || rec.Year != 0 {
		t.Fatalf("unexpected duration/year: %+v", rec)
	}
}

func TestDecodeSongsStream(t *testing.T) {
	records, _, err := DecodeSongs(strings.NewReader(songJSON + "\n" + songJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestDecodeSongsMalformed(t *testing.T) {
	records, malformed, err := DecodeSongs(strings.NewReader(songJSON + "\n{not json"))
	if err == nil {
		t.Fatal("expected error for malformed trailing document")
	}
	if malformed != 1 {
		t.Fatalf("malformed = %d, want 1", malformed)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record before failure, got %d", len(records))
	}
}

func TestDecodeEvents(t *testing.T) {
	lines := strings.Join([]string{
		`{"artist":"Harmonia","auth":"Logged In","firstName":"Ryan","gender":"M","itemInSession":0,"lastName":"Smith","length":655.77751,"level":"free","location":"San Jose-Sunnyvale-Santa Clara, CA","method":"PUT","page":"NextSong","registration":1541016707796.0,"sessionId":583,"song":"Sehr kosmisch","status":200,"ts":1542241826796,"userAgent":"Mozilla/5.0","userId":"26"}`,
		``,
		`{"artist":null,"auth":"Logged Out","firstName":null,"gender":null,"itemInSession":0,"lastName":null,"length":null,"level":"free","location":null,"method":"GET","page":"Home","registration":null,"sessionId":38,"song":null,"status":200,"ts":1541207073796,"userAgent":null,"userId":""}`,
		`not json at all`,
	}, "\n")

	events, malformed, err := DecodeEvents(strings.NewReader(lines))
	if err != nil {
		t.Fatal(err)
	}
	if malformed != 1 {
		t.Fatalf("malformed = %d, want 1", malformed)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	e := events[0]
	if e.UserID != "26" || e.Page != "NextSong" || e.TS != 1542241826796 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.Registration != 1541016707796 {
		t.Fatalf("registration = %d, want 1541016707796", e.Registration)
	}
	if e.SessionID != 583 {
		t.Fatalf("sessionId = %d, want 583", e.SessionID)
	}

	// Logged-out event: null fields decode to zero values, empty userId kept.
	if events[1].UserID != "" || events[1].TS == 0 {
		t.Fatalf("unexpected logged-out event: %+v", events[1])
	}
}

func TestDecodeEventsNumericUserID(t *testing.T) {
	line := `{"page":"NextSong","ts":1542241826796,"sessionId":"583","userId":26.0}`
	events, malformed, err := DecodeEvents(strings.NewReader(line))
	if err != nil || malformed != 0 {
		t.Fatalf("err = %v, malformed = %d", err, malformed)
	}
	if events[0].UserID != "26" {
		t.Fatalf("userId = %q, want \"26\"", events[0].UserID)
	}
	if events[0].SessionID != 583 {
		t.Fatalf("sessionId = %d, want 583", events[0].SessionID)
	}
}
