package services

import (
	"math"

	"relay/internal/pkg/errs"
)

const (
	// DeliveryBonusCredits is credited on top of the leg reward when the
	// dropoff lands inside the actionable radius of the destination.
	DeliveryBonusCredits = 10

	// distanceCreditCapCredits caps the distance-scaled term so a single
	// long-haul leg cannot dominate the economy.
	distanceCreditCapCredits = 60.0
)

// Reward is the outcome of a completed transit leg.
type Reward struct {
	// Credits earned for carrying the package, excluding the delivery bonus.
	Credits int
	// DeliveryBonus is DeliveryBonusCredits when the leg delivered the
	// package, zero otherwise.
	DeliveryBonus int
	// AvgSpeedKmph is the average speed over the leg, kept for diagnostics.
	AvgSpeedKmph float64
}

// Total returns credits plus the delivery bonus.
func (r Reward) Total() int {
	return r.Credits + r.DeliveryBonus
}

// RewardCalculator converts the effort of a transit leg into credits.
//
// The reward is the sum of a time term (one credit per two minutes carried)
// and a distance term scaled by a speed factor that favors slow, on-foot
// movement. Slower legs earn a higher factor:
//
//	< 5 kmph  -> 3
//	< 30 kmph -> 2
//	< 80 kmph -> 1
//	otherwise -> 0.5
//
// The distance term is capped at 60 credits and the final sum rounds
// half-up. A delivered leg additionally earns DeliveryBonusCredits.
type RewardCalculator struct{}

// NewRewardCalculator creates a new RewardCalculator instance.
func NewRewardCalculator() RewardCalculator {
	return RewardCalculator{}
}

// Calculate computes the reward for a leg that moved the package
// distanceMovedMeters closer to its destination over elapsedSeconds.
// Both inputs must be positive; a legal dropoff guarantees that.
func (c RewardCalculator) Calculate(distanceMovedMeters float64, elapsedSeconds float64, delivered bool) (Reward, error) {
	if distanceMovedMeters <= 0 {
		return Reward{}, errs.NewValueIsOutOfRangeError("distanceMovedMeters", distanceMovedMeters, math.SmallestNonzeroFloat64, math.MaxFloat64)
	}
	if elapsedSeconds <= 0 {
		return Reward{}, errs.NewValueIsOutOfRangeError("elapsedSeconds", elapsedSeconds, math.SmallestNonzeroFloat64, math.MaxFloat64)
	}

	avgSpeedKmph := (distanceMovedMeters / 1000.0) / (elapsedSeconds / 3600.0)

	timeCredits := elapsedSeconds / 120.0
	distanceCredits := math.Min(distanceMovedMeters/1000.0*speedFactor(avgSpeedKmph), distanceCreditCapCredits)

	reward := Reward{
		Credits:      roundHalfUp(timeCredits + distanceCredits),
		AvgSpeedKmph: avgSpeedKmph,
	}
	if delivered {
		reward.DeliveryBonus = DeliveryBonusCredits
	}
	return reward, nil
}

func speedFactor(avgSpeedKmph float64) float64 {
	switch {
	case avgSpeedKmph < 5:
		return 3
	case avgSpeedKmph < 30:
		return 2
	case avgSpeedKmph < 80:
		return 1
	default:
		return 0.5
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
