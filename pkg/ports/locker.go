package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes access to a session across replicas.
// A machine instance must only be driven by one caller at a time; inside one process the
// session manager guarantees that, across processes this lock does.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The lock expires after ttl if it is never released.
	// The returned UnlockFunc MUST be called once the work is done.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
