package memory

import (
	"context"

	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
)

// UserRepository answers identity lookups from the users registered on the store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user directory over the store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ portsrepo.UserReader = (*UserRepository)(nil)

func (r *UserRepository) UserExists(_ context.Context, userID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.users[userID]
	return ok, nil
}
