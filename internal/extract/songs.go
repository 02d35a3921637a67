// Package extract decodes raw dataset objects into model records.
//
// Song files hold one JSON object per file (a stream of objects is also
// accepted); log files are NDJSON, one event per line. Malformed input is
// counted rather than fatal — callers decide whether counts abort the run.
package extract

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/quarrydata/tributary/internal/model"
)

// DecodeSongs reads a stream of song JSON objects from r. Returns the
// records decoded before the first malformed document; malformed is 1 if
// decoding stopped early (a JSON stream cannot be resynced past a bad
// document).
func DecodeSongs(r io.Reader) (records []model.SongRecord, malformed int, err error) {
	dec := json.NewDecoder(r)
	for {
		var rec model.SongRecord
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return records, 0, nil
			}
			return records, 1, fmt.Errorf("extract: decode song record: %w", err)
		}
		records = append(records, rec)
	}
}
