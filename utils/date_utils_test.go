package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateFormats(t *testing.T) {
	inputs := []string{
		"2025-03-10",
		"2025-03-10T14:30:00",
		"2025-03-10T14:30:00.123456",
		"2025-03-10T14:30:00Z",
	}
	for _, in := range inputs {
		parsed, err := ParseDate(in)
		assert.NoError(t, err, in)
		assert.Equal(t, 2025, parsed.Year(), in)
		assert.Equal(t, time.March, parsed.Month(), in)
		assert.Equal(t, 10, parsed.Day(), in)
	}

	_, err := ParseDate("10/03/2025")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2025, 3, 10, 14, 30, 45, 123, time.UTC)

	start := DayStart(ts)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)

	end := DayEnd(ts)
	assert.Equal(t, 10, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)))
}

func TestDaysInclusive(t *testing.T) {
	mar1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mar10 := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysInclusive(mar1, mar10))
	assert.Equal(t, 1, DaysInclusive(mar1, mar1))
	// Inverted ranges count as zero days.
	assert.Equal(t, 0, DaysInclusive(mar10, mar1))

	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 365, DaysInclusive(jan1, dec31))
}

func TestDaysInclusiveAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// US spring-forward on 2025-03-09 removes an hour from the range; the
	// day count must stay calendar-based.
	mar1 := time.Date(2025, 3, 1, 0, 0, 0, 0, ny)
	mar15 := time.Date(2025, 3, 15, 0, 0, 0, 0, ny)
	assert.Equal(t, 15, DaysInclusive(mar1, mar15))

	// Fall-back on 2025-11-02 adds an hour; no extra day either.
	nov1 := time.Date(2025, 11, 1, 0, 0, 0, 0, ny)
	nov3 := time.Date(2025, 11, 3, 23, 0, 0, 0, ny)
	assert.Equal(t, 3, DaysInclusive(nov1, nov3))
}

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.Offset())

	// Out-of-range inputs clamp to defaults.
	p = CreatePagination(5, 0, 0)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}
