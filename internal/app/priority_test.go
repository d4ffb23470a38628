package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coffee-scheduler/internal/config"
	"coffee-scheduler/internal/domain"
)

var scoreEpoch = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func defaultModel() PriorityModel {
	return NewPriorityModel(config.DefaultPriority())
}

func Test_PriorityModel_Score(t *testing.T) {
	t.Parallel()

	model := defaultModel()

	tests := []struct {
		name    string
		order   domain.Order
		now     time.Time
		want    float64
	}{
		{
			name:  "fresh order scores zero",
			order: domain.Order{ArrivalTime: scoreEpoch},
			now:   scoreEpoch,
			want:  0,
		},
		{
			name:  "ten minutes of waiting",
			order: domain.Order{ArrivalTime: scoreEpoch},
			now:   scoreEpoch.Add(10 * time.Minute),
			want:  30,
		},
		{
			name:  "skips add a fixed boost",
			order: domain.Order{ArrivalTime: scoreEpoch, TimesSkipped: 2},
			now:   scoreEpoch,
			want:  40,
		},
		{
			name:  "loyalty bonus",
			order: domain.Order{ArrivalTime: scoreEpoch, LoyaltyMember: true},
			now:   scoreEpoch,
			want:  15,
		},
		{
			name:  "red tier at 27 minutes",
			order: domain.Order{ArrivalTime: scoreEpoch},
			now:   scoreEpoch.Add(27 * time.Minute),
			want:  81,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, model.Score(&tt.order, tt.now), 1e-9)
		})
	}
}

func Test_PriorityModel_MonotonicWhilePending(t *testing.T) {
	t.Parallel()

	model := defaultModel()
	order := &domain.Order{ArrivalTime: scoreEpoch, Status: domain.StatusPending}

	prev := model.Score(order, scoreEpoch)
	now := scoreEpoch
	for i := 0; i < 60; i++ {
		now = now.Add(30 * time.Second)
		if i%7 == 0 {
			order.TimesSkipped++
		}
		score := model.Score(order, now)
		assert.GreaterOrEqual(t, score, prev, "score regressed at tick %d", i)
		prev = score
	}
}

func Test_PriorityModel_AgedLoyalOrderOutranksFreshOne(t *testing.T) {
	t.Parallel()

	model := defaultModel()
	now := scoreEpoch.Add(30 * time.Minute)

	aged := &domain.Order{
		ArrivalTime:   scoreEpoch,
		TimesSkipped:  3,
		LoyaltyMember: true,
	}
	fresh := &domain.Order{ArrivalTime: now}

	assert.Greater(t, model.Score(aged, now), model.Score(fresh, now))
	// 30*3 + 3*20 + 15
	assert.InDelta(t, 165, model.Score(aged, now), 1e-9)
}

func Test_PriorityModel_NeverNegative(t *testing.T) {
	t.Parallel()

	model := NewPriorityModel(config.PriorityConfig{WaitWeight: -1})
	order := &domain.Order{ArrivalTime: scoreEpoch}
	assert.Zero(t, model.Score(order, scoreEpoch.Add(time.Hour)))
}
