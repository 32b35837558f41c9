package services_test

import (
	"testing"

	"relay/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardCalculator_Calculate(t *testing.T) {
	calc := services.NewRewardCalculator()

	t.Run("slow short leg", func(t *testing.T) {
		// 100 m in 10 minutes: avg 0.6 kmph, factor 3,
		// round(600/120 + 0.1*3) = round(5.3) = 5.
		reward, err := calc.Calculate(100, 600, false)

		require.NoError(t, err)
		assert.Equal(t, 5, reward.Credits)
		assert.Equal(t, 0, reward.DeliveryBonus)
		assert.InDelta(t, 0.6, reward.AvgSpeedKmph, 1e-9)
		assert.Equal(t, 5, reward.Total())
	})

	t.Run("delivery bonus", func(t *testing.T) {
		reward, err := calc.Calculate(100, 600, true)

		require.NoError(t, err)
		assert.Equal(t, 5, reward.Credits)
		assert.Equal(t, services.DeliveryBonusCredits, reward.DeliveryBonus)
		assert.Equal(t, 15, reward.Total())
	})

	t.Run("speed factor tiers", func(t *testing.T) {
		tests := []struct {
			name          string
			meters        float64
			seconds       float64
			expectCredits int
		}{
			// 4 km in 1 h: 4 kmph, factor 3 -> round(30 + 12) = 42.
			{"walking", 4000, 3600, 42},
			// 20 km in 1 h: 20 kmph, factor 2 -> round(30 + 40) = 70.
			{"cycling", 20000, 3600, 70},
			// 60 km in 1 h: 60 kmph, factor 1 -> round(30 + 60) = 90.
			{"driving", 60000, 3600, 90},
			// 100 km in 1 h: 100 kmph, factor 0.5, distance term capped
			// at 60 -> round(30 + 50) = 80.
			{"highway", 100000, 3600, 80},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				reward, err := calc.Calculate(tt.meters, tt.seconds, false)
				require.NoError(t, err)
				assert.Equal(t, tt.expectCredits, reward.Credits)
			})
		}
	})

	t.Run("distance term capped at 60", func(t *testing.T) {
		// 200 km in 4 h: 50 kmph, factor 1, uncapped term would be 200.
		reward, err := calc.Calculate(200000, 4*3600, false)

		require.NoError(t, err)
		// round(120 + 60) = 180.
		assert.Equal(t, 180, reward.Credits)
	})

	t.Run("rounds half up", func(t *testing.T) {
		// 100 m in 1 minute: avg 6 kmph, factor 2,
		// 60/120 + 0.1*2 = 0.7 -> 1.
		reward, err := calc.Calculate(100, 60, false)

		require.NoError(t, err)
		assert.Equal(t, 1, reward.Credits)
	})

	t.Run("non-positive inputs rejected", func(t *testing.T) {
		_, err := calc.Calculate(0, 600, false)
		require.Error(t, err)

		_, err = calc.Calculate(100, 0, false)
		require.Error(t, err)

		_, err = calc.Calculate(-10, 600, false)
		require.Error(t, err)
	})
}
