package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfMonthUTC(t *testing.T) {
	require.NoError(t, Init("UTC"))
	ts := time.Date(2026, 3, 17, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), StartOfMonthUTC(ts))
}

func TestSetNowFunc(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	restore := SetNowFunc(func() time.Time { return fixed })
	assert.Equal(t, fixed, NowUTC())
	restore()
	assert.NotEqual(t, fixed, NowUTC())
}

func TestAddDaysAndFromUnix(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), AddDays(start, 30))
	assert.True(t, FromUnix(0).IsZero())
	assert.Equal(t, start, FromUnix(start.Unix()))
}
