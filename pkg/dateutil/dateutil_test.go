package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	in := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), MonthStart(in))
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		in       time.Time
		n        int
		expected time.Time
		desc     string
	}{
		{
			in:       time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC),
			n:        1,
			expected: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			desc:     "end of january does not overflow",
		},
		{
			in:       time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			n:        -6,
			expected: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			desc:     "negative offset walks backward",
		},
		{
			in:       time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			n:        14,
			expected: time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
			desc:     "crosses year boundary",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, AddMonths(tc.in, tc.n))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	a := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, MonthsBetween(a, b))
	assert.Equal(t, -10, MonthsBetween(b, a))
	assert.Equal(t, 0, MonthsBetween(a, a))
}

func TestSeasonalIndex(t *testing.T) {
	assert.Equal(t, 0, SeasonalIndex(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 11, SeasonalIndex(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
}
