package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestDayBounds(t *testing.T) {
	loc := Location(DefaultTimezone)
	ref := time.Date(2024, 5, 11, 1, 30, 0, 0, time.UTC) // 22:30 on the 10th in São Paulo

	start, end := DayBounds(ref, loc)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, loc), end)
}

func TestDaysBetween(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	today := time.Date(2024, 5, 15, 0, 0, 0, 0, loc)
	assert.Zero(t, DaysBetween(today, today))
	assert.Equal(t, -1, DaysBetween(today, today.AddDate(0, 0, -1)))
	assert.Equal(t, 40, DaysBetween(today, today.AddDate(0, 0, 40)))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	beforeDST := time.Date(2024, 3, 9, 0, 0, 0, 0, ny)
	assert.Equal(t, 2, DaysBetween(beforeDST, beforeDST.AddDate(0, 0, 2)))
}

func TestInclusiveRange(t *testing.T) {
	loc := time.UTC

	start, end, err := InclusiveRange("2024-05-01", "2024-05-31", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), *start)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), *end)

	start, end, err = InclusiveRange("", "", loc)
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)

	_, _, err = InclusiveRange("2024-13-01", "", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
