package domain

import "time"

type Barista struct {
	ID                   int64
	Name                 string
	BusyUntil            *time.Time
	TotalOrdersCompleted int
	TotalMinutesAssigned int
}

// IsBusy is derived from BusyUntil on every read; busy-state is never stored
// separately so it cannot go stale.
func (b *Barista) IsBusy(now time.Time) bool {
	return b.BusyUntil != nil && b.BusyUntil.After(now)
}

func (b *Barista) StatusString(now time.Time) string {
	if b.IsBusy(now) {
		return "BUSY"
	}
	return "IDLE"
}

type Customer struct {
	ID            int64
	Name          string
	Email         string
	LoyaltyMember bool
}
