package cache

import (
	"context"
	"strconv"
	"time"
)

// Keys for the cached list responses. Mutations must invalidate every key
// whose entry could include the touched record.
const (
	UsersKey    = "users:all"
	ExpensesKey = "expenses:all"
)

// UserExpensesKey returns the cache key for one user's expense list.
func UserExpensesKey(userID int) string {
	return "expenses:user:" + strconv.Itoa(userID)
}

// Cache is an interface used for caching list responses
type Cache interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// the key existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
