package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 10*60+45, minutes)

	_, err = TimeString("garbage").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	got, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	// 24:00 допустимо как правая граница интервала
	got, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// Выход за пределы суток
	_, err = TimeString("23:45").AddMinutes(30)
	assert.Error(t, err)

	_, err = TimeString("00:10").AddMinutes(-20)
	assert.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("18:00").IsAfter(TimeString("09:00")))

	// 24:00 лексикографически позже любого валидного времени начала
	assert.True(t, TimeString("24:00").IsAfter(TimeString("23:59")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:30:00")))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	assert.Error(t, ts.Scan(42))
}
