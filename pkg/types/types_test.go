package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString(t *testing.T) {
	t.Run("parse normalizes", func(t *testing.T) {
		ts, err := NewTimeStringFromString("8:05")
		require.NoError(t, err)
		assert.Equal(t, TimeString("08:05"), ts)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewTimeStringFromString("25:00")
		assert.ErrorIs(t, err, ErrInvalidTimeString)
		assert.Error(t, TimeString("noon").Validate())
	})

	t.Run("compare and add", func(t *testing.T) {
		a := TimeString("09:00")
		b, err := a.AddMinutes(40)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:40"), b)
		assert.True(t, a.IsBefore(b))
		assert.True(t, b.IsAfter(a))

		_, err = TimeString("23:50").AddMinutes(20)
		assert.ErrorIs(t, err, ErrTimeOverflow)
	})

	t.Run("scan postgres TIME", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("13:40:00")))
		assert.Equal(t, TimeString("13:40"), ts)
	})
}

func TestDate(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		d, err := ParseDate("2025-06-10")
		require.NoError(t, err)
		assert.Equal(t, "2025-06-10", d.String())
		assert.Equal(t, time.Tuesday, d.Weekday())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseDate("10/06/2025")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("new date drops time of day", func(t *testing.T) {
		d := NewDate(time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC))
		assert.True(t, d.Equal(MustParseDate("2025-06-10")))
	})

	t.Run("ordering", func(t *testing.T) {
		a := MustParseDate("2025-06-09")
		b := MustParseDate("2025-06-10")
		assert.True(t, a.Before(b))
		assert.True(t, b.After(a))
		assert.False(t, b.Before(b))
	})

	t.Run("scan variants", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan("2025-06-10"))
		assert.Equal(t, "2025-06-10", d.String())

		require.NoError(t, d.Scan([]byte("2025-06-11T00:00:00Z")))
		assert.Equal(t, "2025-06-11", d.String())

		require.NoError(t, d.Scan(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, "2025-06-12", d.String())

		assert.Error(t, d.Scan(42))
	})

	t.Run("json", func(t *testing.T) {
		raw, err := json.Marshal(MustParseDate("2025-06-10"))
		require.NoError(t, err)
		assert.JSONEq(t, `"2025-06-10"`, string(raw))

		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-06-01"`), &d))
		assert.Equal(t, "2025-06-01", d.String())
	})

	t.Run("value", func(t *testing.T) {
		v, err := MustParseDate("2025-06-10").Value()
		require.NoError(t, err)
		assert.Equal(t, "2025-06-10", v)
	})
}
