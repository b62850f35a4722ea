// Package biztime centralises time handling. Storage and transport use UTC;
// the business timezone only decides calendar boundaries such as "this month".
package biztime

import (
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

var (
	mu          sync.RWMutex
	bizLocation = time.UTC
	nowFunc     = time.Now
)

// Init sets the business timezone. An empty tz keeps UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	mu.RLock()
	f := nowFunc
	mu.RUnlock()
	return f().UTC()
}

// SetNowFunc overrides the clock and returns a restore function. Tests only.
func SetNowFunc(f func() time.Time) (restore func()) {
	mu.Lock()
	prev := nowFunc
	nowFunc = f
	mu.Unlock()
	return func() {
		mu.Lock()
		nowFunc = prev
		mu.Unlock()
	}
}

// StartOfMonthUTC returns the first instant of t's month in the business
// timezone, expressed in UTC.
func StartOfMonthUTC(t time.Time) time.Time {
	loc := Location()
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc).UTC()
}

// AddDays adds whole days in UTC so periods are independent of DST.
func AddDays(t time.Time, days int) time.Time {
	return t.UTC().Add(time.Duration(days) * 24 * time.Hour)
}

// FromUnix converts provider epoch seconds to UTC; zero maps to the zero time.
func FromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
