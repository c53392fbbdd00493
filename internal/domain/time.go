package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the timestamp format of existing state documents:
// local-naive seconds precision, always UTC, no zone suffix.
const TimeLayout = "2006-01-02T15:04:05"

// Time wraps time.Time to keep the legacy document encoding stable.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{t.UTC().Truncate(time.Second)}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeLayout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
