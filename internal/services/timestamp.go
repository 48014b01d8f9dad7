package services

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates,
// which HTML date inputs send.
type Timestamp time.Time

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t *Timestamp) Time() time.Time {
	return time.Time(*t)
}

// timePtr converts an optional request timestamp.
func timePtr(t *Timestamp) *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}
