package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/quarrydata/tributary/internal/model"
)

// Log lines are small JSON objects; 1MB leaves generous headroom.
const maxLineSize = 1 << 20

// flexString accepts a JSON string, number, or null. Event exports are not
// consistent about quoting userId.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	// Integral floats (26.0) normalize to their integer form.
	if i, err := n.Int64(); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	if v, err := n.Float64(); err == nil && v == float64(int64(v)) {
		*f = flexString(strconv.FormatInt(int64(v), 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// flexInt64 accepts a JSON number, numeric string, or null. Floats are
// truncated (registration arrives in scientific notation in some exports).
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt64(i)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	*f = flexInt64(int64(v))
	return nil
}

// logEventJSON mirrors the on-disk field names of a log event.
type logEventJSON struct {
	Artist        string     `json:"artist"`
	Auth          string     `json:"auth"`
	FirstName     string     `json:"firstName"`
	Gender        string     `json:"gender"`
	ItemInSession int        `json:"itemInSession"`
	LastName      string     `json:"lastName"`
	Length        float64    `json:"length"`
	Level         string     `json:"level"`
	Location      string     `json:"location"`
	Method        string     `json:"method"`
	Page          string     `json:"page"`
	Registration  flexInt64  `json:"registration"`
	SessionID     flexInt64  `json:"sessionId"`
	Song          string     `json:"song"`
	Status        int        `json:"status"`
	TS            flexInt64  `json:"ts"`
	UserAgent     string     `json:"userAgent"`
	UserID        flexString `json:"userId"`
}

func (e logEventJSON) toModel() model.LogEvent {
	return model.LogEvent{
		Artist:        e.Artist,
		Auth:          e.Auth,
		FirstName:     e.FirstName,
		Gender:        e.Gender,
		ItemInSession: e.ItemInSession,
		LastName:      e.LastName,
		Length:        e.Length,
		Level:         e.Level,
		Location:      e.Location,
		Method:        e.Method,
		Page:          e.Page,
		Registration:  int64(e.Registration),
		SessionID:     int64(e.SessionID),
		Song:          e.Song,
		Status:        e.Status,
		TS:            int64(e.TS),
		UserAgent:     e.UserAgent,
		UserID:        string(e.UserID),
	}
}

// DecodeEvents reads NDJSON log events from r. Blank lines are ignored;
// lines that fail to parse are counted in malformed and skipped.
func DecodeEvents(r io.Reader) (events []model.LogEvent, malformed int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var raw logEventJSON
		if err := json.Unmarshal(line, &raw); err != nil {
			malformed++
			continue
		}
		events = append(events, raw.toModel())
	}
	if err := sc.Err(); err != nil {
		return events, malformed, fmt.Errorf("extract: read log lines: %w", err)
	}
	return events, malformed, nil
}
