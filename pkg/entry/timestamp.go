package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire format of every instant: UTC with millisecond precision.
const Layout = "2006-01-02T15:04:05.000Z07:00"

// ParseTime parses any RFC 3339 instant.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is an absolute instant that serializes as an ISO 8601 UTC string.
type Timestamp struct {
	time.Time
}

// Stamp wraps t as a Timestamp in UTC.
func Stamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(timestamp)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

func (t Timestamp) String() string {
	return FormatTime(t.Time)
}

// FormatTime renders v in the wire Layout.
func FormatTime(v time.Time) string {
	return v.UTC().Format(Layout)
}
