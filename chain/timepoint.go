package chain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eosiogo/codec"
)

// jsonTimeLayout matches TimePoint's ISO-ish millisecond-resolution form,
// without a timezone suffix (timestamps are always UTC).
const jsonTimeLayout = "2006-01-02T15:04:05.000"

// jsonTimeSecLayout is TimePointSec's form: the same but without the
// fractional-second component, since a TimePointSec carries no sub-second
// precision to render.
const jsonTimeSecLayout = "2006-01-02T15:04:05"

// TimePoint is a signed microsecond-resolution Unix timestamp.
type TimePoint int64

// TimePointSec is a signed second-resolution Unix timestamp.
type TimePointSec int32

func NewTimePoint(t time.Time) TimePoint {
	return TimePoint(t.UnixMicro())
}

func NewTimePointSec(t time.Time) TimePointSec {
	return TimePointSec(t.Unix())
}

func (t TimePoint) Time() time.Time { return time.UnixMicro(int64(t)).UTC() }
func (t TimePointSec) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

func (t TimePoint) String() string    { return t.Time().Format(jsonTimeLayout) }
func (t TimePointSec) String() string { return t.Time().Format(jsonTimeSecLayout) }

func ParseTimePoint(s string) (TimePoint, error) {
	parsed, err := time.Parse(jsonTimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("chain: malformed time_point %q: %w", s, err)
	}
	return NewTimePoint(parsed), nil
}

func ParseTimePointSec(s string) (TimePointSec, error) {
	parsed, err := time.Parse(jsonTimeSecLayout, s)
	if err != nil {
		return 0, fmt.Errorf("chain: malformed time_point_sec %q: %w", s, err)
	}
	return NewTimePointSec(parsed), nil
}

func (t TimePoint) MarshalBinary(w *codec.Writer) error {
	w.WriteUint64(uint64(t))
	return nil
}

func (t *TimePoint) UnmarshalBinary(r *codec.Reader) error {
	v, err := r.ReadUint64()
	if err != nil {
		return err
	}
	*t = TimePoint(int64(v))
	return nil
}

func (t TimePointSec) MarshalBinary(w *codec.Writer) error {
	w.WriteUint32(uint32(t))
	return nil
}

func (t *TimePointSec) UnmarshalBinary(r *codec.Reader) error {
	v, err := r.ReadUint32()
	if err != nil {
		return err
	}
	*t = TimePointSec(int32(v))
	return nil
}

func (t TimePoint) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }
func (t *TimePoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSuffix(s, "Z")
	parsed, err := ParseTimePoint(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimePointSec) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }
func (t *TimePointSec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSuffix(s, "Z")
	parsed, err := ParseTimePointSec(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
