package util

import (
	"context"
	"time"

	"github.com/gofrs/flock"
	"github.com/gruntwork-io/testgrunt/internal/errors"
)

const defaultLockRetryDelay = 100 * time.Millisecond

// Lockfile is an advisory file lock held across processes.
type Lockfile struct {
	*flock.Flock
}

// NewLockfile returns an unlocked lock on the given path. The file is created when the lock is taken.
func NewLockfile(filename string) *Lockfile {
	return &Lockfile{
		flock.New(filename),
	}
}

// Lock blocks until the lock is taken or ctx is done.
func (lockfile *Lockfile) Lock(ctx context.Context) error {
	locked, err := lockfile.TryLockContext(ctx, defaultLockRetryDelay)
	if err != nil {
		return errors.New(err)
	}

	if !locked {
		return errors.Errorf("unable to lock file %s", lockfile.Path())
	}

	return nil
}

// Unlock releases the lock if it is held.
func (lockfile *Lockfile) Unlock() error {
	if !lockfile.Locked() {
		return nil
	}

	return errors.New(lockfile.Flock.Unlock())
}
