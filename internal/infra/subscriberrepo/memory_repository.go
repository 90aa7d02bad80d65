package subscriberrepo

import (
	"context"
	"sync"

	"github.com/yanqian/diveplanner/internal/domain/subscription"
	"github.com/yanqian/diveplanner/pkg/util"
)

// MemoryRepository provides an in-memory subscriber store for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]subscription.Subscriber
	seq     int64
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]subscription.Subscriber)}
}

// Create stores the subscriber unless the e-mail already exists.
func (r *MemoryRepository) Create(_ context.Context, email, source string) (subscription.Subscriber, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byEmail[email]; ok {
		return existing, false, nil
	}
	r.seq++
	sub := subscription.Subscriber{
		ID:        r.seq,
		Email:     email,
		Source:    source,
		CreatedAt: util.NowUTC(),
	}
	r.byEmail[email] = sub
	return sub, true, nil
}

// Delete removes the subscriber.
func (r *MemoryRepository) Delete(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; !ok {
		return false, nil
	}
	delete(r.byEmail, email)
	return true, nil
}

var _ subscription.Repository = (*MemoryRepository)(nil)
