package inmemory

import (
	"fmt"
	"sort"
	"time"

	"coffee-scheduler/internal/domain"
)

// Roster is the fixed set of baristas configured at startup. There is no
// hire/fire at runtime; only busy-state and counters change, and only under
// the scheduler's lock.
type Roster struct {
	baristas map[int64]*domain.Barista
}

func NewRoster(size int) *Roster {
	if size <= 0 {
		size = 1
	}
	baristas := make(map[int64]*domain.Barista, size)
	for i := 1; i <= size; i++ {
		id := int64(i)
		baristas[id] = &domain.Barista{
			ID:   id,
			Name: fmt.Sprintf("Barista %d", i),
		}
	}
	return &Roster{baristas: baristas}
}

func (r *Roster) Get(baristaID int64) (*domain.Barista, error) {
	barista, exists := r.baristas[baristaID]
	if !exists {
		return nil, domain.EntityNotFoundError("barista", fmt.Sprintf("%d", baristaID))
	}
	return barista, nil
}

func (r *Roster) Size() int {
	return len(r.baristas)
}

// All returns the roster sorted by id.
func (r *Roster) All() []*domain.Barista {
	all := make([]*domain.Barista, 0, len(r.baristas))
	for _, barista := range r.baristas {
		all = append(all, barista)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Idle returns baristas free at now, sorted by id. Baristas are otherwise
// interchangeable; id order keeps assignment deterministic.
func (r *Roster) Idle(now time.Time) []*domain.Barista {
	var idle []*domain.Barista
	for _, barista := range r.baristas {
		if !barista.IsBusy(now) {
			idle = append(idle, barista)
		}
	}
	sort.Slice(idle, func(i, j int) bool { return idle[i].ID < idle[j].ID })
	return idle
}
