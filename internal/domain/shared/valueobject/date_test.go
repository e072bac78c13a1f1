package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2025-01-15")
		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 15, d.Day())
		assert.Equal(t, time.Wednesday, d.Weekday())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := ParseDate("15/01/2025")
		assert.Error(t, err)
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
	})
}

func TestDateOfStripsTimeOfDay(t *testing.T) {
	// 23:30 local must not bleed into the next day
	loc := time.FixedZone("UTC-3", -3*60*60)
	d := DateOf(time.Date(2025, time.June, 30, 23, 30, 0, 0, loc))
	assert.Equal(t, "2025-06-30", d.String())
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2025, time.January, 30)

	t.Run("crosses month boundary", func(t *testing.T) {
		assert.Equal(t, "2025-02-01", d.AddDays(2).String())
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		assert.Equal(t, "2026-01-04", NewDate(2025, time.December, 30).AddDays(5).String())
	})

	t.Run("negative offset", func(t *testing.T) {
		assert.Equal(t, "2025-01-29", d.AddDays(-1).String())
	})

	t.Run("leap day", func(t *testing.T) {
		assert.Equal(t, "2024-02-29", NewDate(2024, time.February, 28).AddDays(1).String())
	})
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2025, time.February, 1)
	b := NewDate(2025, time.February, 28)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2025, time.February, 1)))
	assert.Equal(t, 27, a.DaysUntil(b))
	assert.Equal(t, -27, b.DaysUntil(a))
	assert.True(t, Date{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-01"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, d.Equal(decoded))
}

func TestDateScan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, "2025-04-05", d.String())
	})

	t.Run("from string", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan("2025-04-05"))
		assert.Equal(t, "2025-04-05", d.String())
	})

	t.Run("nil resets to zero", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})
}
