package app

import (
	"time"

	"coffee-scheduler/internal/config"
	"coffee-scheduler/internal/domain"
)

// PriorityModel computes an order's urgency. The score is a weighted sum of
// three terms and is monotonically non-decreasing while an order stays
// pending: wait time only grows, skips only grow, loyalty never flips off.
//
//	score = waitMinutes*WaitWeight + timesSkipped*SkipWeight + loyaltyBonus
//
// With the default weights (3.0 / 20.0 / 15.0) an order crosses the
// dashboard's amber tier (>50) around 17 minutes and the red tier (>80)
// around 27 minutes, or after 4 skips on its own.
type PriorityModel struct {
	waitWeight   float64
	skipWeight   float64
	loyaltyBonus float64
}

func NewPriorityModel(cfg config.PriorityConfig) PriorityModel {
	return PriorityModel{
		waitWeight:   cfg.WaitWeight,
		skipWeight:   cfg.SkipWeight,
		loyaltyBonus: cfg.LoyaltyBonus,
	}
}

// Score is pure: no side effects, same inputs give the same float.
func (m PriorityModel) Score(order *domain.Order, now time.Time) float64 {
	score := order.WaitMinutes(now)*m.waitWeight + float64(order.TimesSkipped)*m.skipWeight
	if order.LoyaltyMember {
		score += m.loyaltyBonus
	}
	if score < 0 {
		return 0
	}
	return score
}
