package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

// lockTimeout bounds how long a single operation waits for the store lock.
const lockTimeout = 5 * time.Second

var errLockBusy = errors.New("store lock busy")

// acquireLock takes a shared or exclusive advisory lock on path, retrying with
// exponential backoff until lockTimeout or ctx expires.
func acquireLock(ctx context.Context, path string, shared bool) (*flock.Flock, error) {
	lock := flock.New(path)

	try := func() error {
		var locked bool
		var err error
		if shared {
			locked, err = lock.TryRLock()
		} else {
			locked, err = lock.TryLock()
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		if !locked {
			return errLockBusy
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = lockTimeout

	if err := backoff.Retry(try, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return lock, nil
}
