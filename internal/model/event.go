package model

// PageNextSong is the page value marking an actual song play. Only events
// with this page feed the users, time, and songplays tables.
const PageNextSong = "NextSong"

// LogEvent is one entry from the log_data dataset: a single app event
// emitted by the streaming client. TS is epoch milliseconds UTC.
type LogEvent struct {
	Artist        string
	Auth          string
	FirstName     string
	Gender        string
	ItemInSession int
	LastName      string
	Length        float64
	Level         string
	Location      string
	Method        string
	Page          string
	Registration  int64
	SessionID     int64
	Song          string
	Status        int
	TS            int64
	UserAgent     string
	UserID        string
}

// UserRow is a row of the users dimension table. Unique by user_id.
type UserRow struct {
	UserID    string `parquet:"user_id"`
	FirstName string `parquet:"first_name"`
	LastName  string `parquet:"last_name"`
	Gender    string `parquet:"gender"`
	Level     string `parquet:"level"`
}

// TimeRow is a row of the time dimension table, derived from a play
// timestamp. Unique by start_time; partitioned by (year, month).
type TimeRow struct {
	StartTime int64 `parquet:"start_time,timestamp(millisecond)"`
	Hour      int32 `parquet:"hour"`
	Day       int32 `parquet:"day"`
	Week      int32 `parquet:"week"`
	Month     int32 `parquet:"month"`
	Year      int32 `parquet:"year"`
	Weekday   int32 `parquet:"weekday"`
}

// SongplayRow is a row of the songplays fact table: one song play joined
// against the songs dimension. Partitioned by (year, month).
type SongplayRow struct {
	SongplayID string `parquet:"songplay_id"`
	StartTime  int64  `parquet:"start_time,timestamp(millisecond)"`
	UserID     string `parquet:"user_id"`
	Level      string `parquet:"level"`
	SongID     string `parquet:"song_id"`
	ArtistID   string `parquet:"artist_id"`
	SessionID  int64  `parquet:"session_id"`
	Location   string `parquet:"location"`
	UserAgent  string `parquet:"user_agent"`
	Year       int32  `parquet:"year"`
	Month      int32  `parquet:"month"`
}
