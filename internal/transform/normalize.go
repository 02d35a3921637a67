// Package transform builds the dimensional tables from decoded records:
// deduplicated songs/artists/users/time dimensions and the songplays fact
// table joined against the song dimension.
package transform

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TitleKey normalizes a song title into the key used for the log-to-song
// join: NFC-normalized, lowercased, with surrounding whitespace removed.
// Log events and song metadata come from different systems and disagree
// about unicode composition.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(title)))
}
