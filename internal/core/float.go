package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float is a JSON scalar that may arrive as a number, a numeric
// string, or be absent entirely. Collaborator responses are not under
// our control; downstream stages branch on Valid rather than treating
// a malformed field as a decode error.
type Float struct {
	Value float64
	Valid bool
}

func FloatOf(v float64) Float {
	return Float{Value: v, Valid: true}
}

func (f *Float) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = Float{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*f = Float{}
			return nil
		}
		s = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = Float{}
		return nil
	}
	*f = Float{Value: v, Valid: true}
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
