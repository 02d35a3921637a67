package transform

import (
	"sort"

	"github.com/quarrydata/tributary/internal/model"
)

// SongSet accumulates song records and derives the songs and artists
// dimensions, deduplicated on their natural keys. First occurrence wins.
type SongSet struct {
	songs   map[string]model.SongRow
	artists map[string]model.ArtistRow

	// DupSongs counts records whose song_id was already seen;
	// DroppedSongs counts records missing song_id or artist_id.
	DupSongs     int
	DroppedSongs int
}

// NewSongSet creates an empty SongSet.
func NewSongSet() *SongSet {
	return &SongSet{
		songs:   make(map[string]model.SongRow),
		artists: make(map[string]model.ArtistRow),
	}
}

// Add folds one song record into the songs and artists dimensions.
func (s *SongSet) Add(rec model.SongRecord) {
	if rec.SongID == "" || rec.ArtistID == "" {
		s.DroppedSongs++
		return
	}

	if _, seen := s.songs[rec.SongID]; seen {
		s.DupSongs++
	} else {
		s.songs[rec.SongID] = model.SongRow{
			SongID:   rec.SongID,
			Title:    rec.Title,
			ArtistID: rec.ArtistID,
			Year:     int32(rec.Year),
			Duration: rec.Duration,
		}
	}

	if _, seen := s.artists[rec.ArtistID]; !seen {
		s.artists[rec.ArtistID] = model.ArtistRow{
			ArtistID:  rec.ArtistID,
			Name:      rec.ArtistName,
			Location:  rec.ArtistLocation,
			Latitude:  rec.ArtistLatitude,
			Longitude: rec.ArtistLongitude,
		}
	}
}

// Songs returns the songs dimension sorted by song_id.
func (s *SongSet) Songs() []model.SongRow {
	rows := make([]model.SongRow, 0, len(s.songs))
	for _, row := range s.songs {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SongID < rows[j].SongID })
	return rows
}

// Artists returns the artists dimension sorted by artist_id.
func (s *SongSet) Artists() []model.ArtistRow {
	rows := make([]model.ArtistRow, 0, len(s.artists))
	for _, row := range s.artists {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ArtistID < rows[j].ArtistID })
	return rows
}
