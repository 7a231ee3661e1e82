package repositories

import "context"

// UserReader resolves user identities owned by the identity service.
type UserReader interface {
	// UserExists reports whether a user with the given id is known.
	UserExists(ctx context.Context, userID string) (bool, error)
}
