package inmemory

import (
	"fmt"
	"strings"
	"sync"

	"coffee-scheduler/internal/domain"
	"coffee-scheduler/pkg/cache"
)

// CustomerRegistry stores customers with a unique-email lookup. Unlike the
// order queue it carries its own lock: customer reads and writes come from
// HTTP handlers and never pass through the scheduler's critical section.
type CustomerRegistry struct {
	mu      sync.RWMutex
	byID    map[int64]*domain.Customer
	byEmail map[string]int64
	nextID  int64

	emailCache *cache.LRU[string, domain.Customer]
}

func NewCustomerRegistry(cacheCfg *cache.Config) *CustomerRegistry {
	r := &CustomerRegistry{
		byID:    make(map[int64]*domain.Customer),
		byEmail: make(map[string]int64),
	}
	if cacheCfg != nil {
		r.emailCache = cache.New[string, domain.Customer](*cacheCfg)
	}
	return r
}

func (r *CustomerRegistry) Create(name, email string, loyaltyMember bool) (domain.Customer, error) {
	email = normalizeEmail(email)
	if name == "" {
		return domain.Customer{}, domain.ValidationFailedError("customer name must not be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ValidationFailedError(fmt.Sprintf("invalid email %q", email))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return domain.Customer{}, domain.DuplicateEmailError(email)
	}

	r.nextID++
	customer := &domain.Customer{
		ID:            r.nextID,
		Name:          name,
		Email:         email,
		LoyaltyMember: loyaltyMember,
	}
	r.byID[customer.ID] = customer
	r.byEmail[email] = customer.ID
	return *customer, nil
}

func (r *CustomerRegistry) Get(customerID int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.byID[customerID]
	if !exists {
		return domain.Customer{}, domain.EntityNotFoundError("customer", fmt.Sprintf("%d", customerID))
	}
	return *customer, nil
}

func (r *CustomerRegistry) FindByEmail(email string) (domain.Customer, error) {
	email = normalizeEmail(email)

	if r.emailCache != nil {
		if customer, ok := r.emailCache.Get(email); ok {
			return customer, nil
		}
	}

	r.mu.RLock()
	id, exists := r.byEmail[email]
	var customer domain.Customer
	if exists {
		customer = *r.byID[id]
	}
	r.mu.RUnlock()

	if !exists {
		return domain.Customer{}, domain.EntityNotFoundError("customer", email)
	}
	if r.emailCache != nil {
		r.emailCache.Set(email, customer)
	}
	return customer, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *CustomerRegistry) GetCacheStats() map[string]int {
	if r.emailCache == nil {
		return map[string]int{}
	}
	hits, misses := r.emailCache.Stats()
	return map[string]int{
		"customer_email":        r.emailCache.Len(),
		"customer_email_hits":   int(hits),
		"customer_email_misses": int(misses),
	}
}

func (r *CustomerRegistry) ClearCache() {
	if r.emailCache != nil {
		r.emailCache.Clear()
	}
}

func (r *CustomerRegistry) CleanupExpired() {
	if r.emailCache != nil {
		r.emailCache.CleanupExpired()
	}
}
