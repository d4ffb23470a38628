package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"coffee-scheduler/internal/domain"
)

type archivedOrder struct {
	ID              int64      `json:"id"`
	CustomerName    string     `json:"customer_name"`
	DrinkType       string     `json:"drink_type"`
	PrepTimeMinutes int        `json:"prep_time_minutes"`
	Price           float64    `json:"price"`
	ArrivalTime     time.Time  `json:"arrival_time"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          string     `json:"status"`
	TimesSkipped    int        `json:"times_skipped"`
	LoyaltyMember   bool       `json:"loyalty_member"`
	BaristaID       *int64     `json:"barista_id,omitempty"`
}

// OrderArchive appends terminal orders to a JSON-lines file. The scheduler
// drains completed and cancelled orders here once their retention window
// passes; active scheduling never reads the file back.
type OrderArchive struct {
	mu   sync.Mutex
	path string
}

func NewOrderArchive(path string) (*OrderArchive, error) {
	if path == "" {
		return nil, fmt.Errorf("archive path must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}
	return &OrderArchive{path: path}, nil
}

func (a *OrderArchive) Append(orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, order := range orders {
		rec := archivedOrder{
			ID:              order.ID,
			CustomerName:    order.CustomerName,
			DrinkType:       order.DrinkType,
			PrepTimeMinutes: order.PrepTimeMinutes,
			Price:           order.Price,
			ArrivalTime:     order.ArrivalTime,
			StartTime:       order.StartTime,
			EndTime:         order.EndTime,
			Status:          order.Status.String(),
			TimesSkipped:    order.TimesSkipped,
			LoyaltyMember:   order.LoyaltyMember,
			BaristaID:       order.BaristaID,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode order %d: %w", order.ID, err)
		}
	}
	return nil
}
