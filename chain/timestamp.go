package chain

import (
	"encoding/json"
	"time"
)

const timePointSecLayout = "2006-01-02T15:04:05"

// TimePointSec is a UTC instant with second precision, packed as uint32.
type TimePointSec time.Time

func NewTimePointSec(t time.Time) TimePointSec {
	return TimePointSec(t.UTC().Truncate(time.Second))
}

func (t TimePointSec) Time() time.Time {
	return time.Time(t).UTC()
}

func (t TimePointSec) Pack(e *Encoder) error {
	return e.WriteTimePointSec(time.Time(t))
}

func (t *TimePointSec) Unpack(d *Decoder) error {
	v, err := d.ReadTimePointSec()
	if err != nil {
		return err
	}
	*t = TimePointSec(v)
	return nil
}

func (t TimePointSec) String() string {
	return t.Time().Format(timePointSecLayout)
}

func (t TimePointSec) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimePointSec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := time.ParseInLocation(timePointSecLayout, s, time.UTC)
	if err != nil {
		return err
	}
	*t = TimePointSec(v)
	return nil
}
