package transform

import (
	"time"

	"github.com/google/uuid"

	"github.com/quarrydata/tributary/internal/model"
)

// SongRef identifies a song dimension row matched during the fact join.
type SongRef struct {
	SongID   string
	ArtistID string
}

// SongIndex maps normalized song titles to dimension keys. Built from the
// completed song dimension before the log phase runs.
type SongIndex struct {
	byTitle map[string]SongRef
}

// NewSongIndex builds a title index over the given songs dimension.
// When two songs share a normalized title, the first (lowest song_id,
// given sorted input) wins.
func NewSongIndex(songs []model.SongRow) *SongIndex {
	idx := &SongIndex{byTitle: make(map[string]SongRef, len(songs))}
	for _, s := range songs {
		key := TitleKey(s.Title)
		if key == "" {
			continue
		}
		if _, seen := idx.byTitle[key]; !seen {
			idx.byTitle[key] = SongRef{SongID: s.SongID, ArtistID: s.ArtistID}
		}
	}
	return idx
}

// Lookup resolves a played song title against the index.
func (idx *SongIndex) Lookup(title string) (SongRef, bool) {
	ref, ok := idx.byTitle[TitleKey(title)]
	return ref, ok
}

// Len returns the number of distinct titles in the index.
func (idx *SongIndex) Len() int { return len(idx.byTitle) }

// BuildSongplay joins one play event against the song dimension and
// produces a fact row. Returns false when the event has no userId, no
// timestamp, or no matching song (inner-join semantics).
func BuildSongplay(ev model.LogEvent, idx *SongIndex) (model.SongplayRow, bool) {
	if ev.UserID == "" || ev.TS <= 0 {
		return model.SongplayRow{}, false
	}
	ref, ok := idx.Lookup(ev.Song)
	if !ok {
		return model.SongplayRow{}, false
	}

	t := time.UnixMilli(ev.TS).UTC()
	return model.SongplayRow{
		SongplayID: uuid.NewString(),
		StartTime:  ev.TS,
		UserID:     ev.UserID,
		Level:      ev.Level,
		SongID:     ref.SongID,
		ArtistID:   ref.ArtistID,
		SessionID:  ev.SessionID,
		Location:   ev.Location,
		UserAgent:  ev.UserAgent,
		Year:       int32(t.Year()),
		Month:      int32(t.Month()),
	}, true
}
