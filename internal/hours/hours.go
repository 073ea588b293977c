package hours

import (
	"fmt"
	"math"
	"strconv"
)

// Flag is one applied-category marker from a remote task payload.
// Flags form a slice rather than a map: the payload's key order decides
// which label wins, so callers must preserve the order the source
// system returned.
type Flag struct {
	ID      string
	Applied bool
}

// Decoded is the result of resolving a task's flags to an hour value.
type Decoded struct {
	Hours float64
	// FlagID is the identifier of the flag that matched.
	FlagID string
	// Label is the display form, e.g. "30m" or "3h".
	Label string
}

// categoryHours maps the fixed category identifiers to hour values.
// category6 is the canonical 5-hour label.
var categoryHours = map[string]float64{
	"category1": 0.5,
	"category2": 1,
	"category3": 2,
	"category4": 3,
	"category5": 4,
	"category6": 5,
	"category7": 6,
	"category8": 7,
	"category9": 8,
}

// directHours maps free-text hour labels to hour values. Matching is
// exact and case-sensitive; only the enumerated spellings are known.
var directHours = map[string]float64{
	"30min":  0.5,
	"30 min": 0.5,
	"0.5h":   0.5,
	"1h":     1,
	"1 H":    1,
	"1.5h":   1.5,
	"1.5 H":  1.5,
	"2h":     2,
	"2.5h":   2.5,
	"3h":     3,
	"4h":     4,
	"5h":     5,
	"6h":     6,
	"7h":     7,
	"8h":     8,
}

// strategy resolves a single flag to a decoded value, or nil when the
// flag is unknown to it.
type strategy func(f Flag) *Decoded

// strategies are tried in order over the whole flag list, so a category
// identifier always wins over a direct-hour label regardless of payload
// position. Adding a decoder means appending here.
var strategies = []strategy{decodeCategory, decodeDirect}

func decodeCategory(f Flag) *Decoded {
	h, ok := categoryHours[f.ID]
	if !ok {
		return nil
	}
	return &Decoded{Hours: h, FlagID: f.ID, Label: FormatHours(h)}
}

func decodeDirect(f Flag) *Decoded {
	h, ok := directHours[f.ID]
	if !ok {
		return nil
	}
	// Direct labels display verbatim.
	return &Decoded{Hours: h, FlagID: f.ID, Label: f.ID}
}

// Decode resolves a task's applied flags to a single hour value. Only
// the first applied flag known to a strategy counts; multiple applied
// flags never sum. The second return is false when nothing matched.
func Decode(flags []Flag) (Decoded, bool) {
	for _, s := range strategies {
		for _, f := range flags {
			if !f.Applied {
				continue
			}
			if d := s(f); d != nil {
				return *d, true
			}
		}
	}
	return Decoded{}, false
}

// CategoryFor returns the category identifier for an exact hour value,
// if one exists. The reverse of the fixed category table.
func CategoryFor(h float64) (string, bool) {
	for id, v := range categoryHours {
		if v == h {
			return id, true
		}
	}
	return "", false
}

// FormatHours renders an hour value as "30m" below one hour, otherwise
// "2h" or "1.5h".
func FormatHours(h float64) string {
	if h < 1 {
		return fmt.Sprintf("%dm", int(math.Round(h*60)))
	}
	if h == math.Trunc(h) {
		return fmt.Sprintf("%dh", int(h))
	}
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
