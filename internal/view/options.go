package view

import "time"

// DefaultTimeLayout renders timestamps in tables, galleries and chart labels.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Options carries the display environment shared by the engines.
type Options struct {
	Location   *time.Location
	TimeLayout string
	Now        func() time.Time
}

// DefaultOptions uses the local time zone and the wall clock.
func DefaultOptions() Options {
	return Options{Location: time.Local, TimeLayout: DefaultTimeLayout, Now: time.Now}
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.TimeLayout == "" {
		o.TimeLayout = DefaultTimeLayout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// format renders t in the display zone; the zero time renders empty.
func (o Options) format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(o.Location).Format(o.TimeLayout)
}
