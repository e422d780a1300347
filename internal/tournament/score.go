package tournament

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Score is a score as entered by a player, kept raw until the round is submitted.
// An empty Score is unset.
type Score string

// ScoreOf returns the Score for an integer value.
func ScoreOf(v int) Score {
	return Score(strconv.Itoa(v))
}

// Int parses the score. Empty, non-numeric and negative scores are not valid.
// The whole string must be an integer: "12abc" and "21.5" are rejected rather
// than read as their numeric prefix, so a mistyped score skips the match
// instead of crediting a guess.
func (s Score) Int() (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// IsSet reports whether anything was entered.
func (s Score) IsSet() bool {
	return strings.TrimSpace(string(s)) != ""
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = Score(raw)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Score(n.String())
	return nil
}
