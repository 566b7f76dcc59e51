package main

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"boothvpm/internal/config"
)

var errRepositoryBusy = errors.New("another boothvpm process is modifying the repository; try again when it finishes")

// withRepositoryLock runs fn while holding the data-directory lock. The
// engine itself never locks, so every mutating command goes through here.
func withRepositoryLock(cfg *config.Config, fn func() error) error {
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire repository lock: %w", err)
	}
	if !ok {
		return errRepositoryBusy
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn()
}
