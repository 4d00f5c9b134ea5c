package fare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Run("whole units", func(t *testing.T) {
		got, err := Calculate(100, 2.5, 1.5)
		require.NoError(t, err)
		assert.Equal(t, int64(375), got)
	})

	t.Run("multiplier of one", func(t *testing.T) {
		got, err := Calculate(420, 1.25, 1.0)
		require.NoError(t, err)
		assert.Equal(t, int64(525), got)
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		// 10 * 1.25 * 1.0 = 12.5, exactly representable
		got, err := Calculate(10, 1.25, 1.0)
		require.NoError(t, err)
		assert.Equal(t, int64(13), got)
	})

	t.Run("rounds down below half", func(t *testing.T) {
		// 3 * 1.0 * 1.1 = 3.3000000000000003
		got, err := Calculate(3, 1.0, 1.1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got)
	})
}

func TestCalculateBadInputs(t *testing.T) {
	cases := []struct {
		name       string
		distanceKm uint32
		farePerKm  float64
		multiplier float64
	}{
		{"zero distance", 0, 2.5, 1.5},
		{"zero rate", 100, 0, 1.5},
		{"negative rate", 100, -2.5, 1.5},
		{"zero multiplier", 100, 2.5, 0},
		{"negative multiplier", 100, 2.5, -1},
		{"nan rate", 100, math.NaN(), 1.5},
		{"nan multiplier", 100, 2.5, math.NaN()},
		{"infinite rate", 100, math.Inf(1), 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.distanceKm, tc.farePerKm, tc.multiplier)
			assert.ErrorIs(t, err, ErrBadInput)
		})
	}
}
