package cache

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// A lock older than this is assumed to belong to a crashed process.
const lockStaleAfter = 10 * time.Minute

type FSMutex interface {
	Lock(lockTryLimit int8) error
	Unlock()
}

type fsMutex struct {
	lockPath string
	locked   bool
}

func NewFSMutex(lockPath string) FSMutex {
	return &fsMutex{lockPath: lockPath, locked: false}
}

// Lock acquires the file lock, retrying up to lockTryLimit times with a
// 50ms pause. Stale locks are removed and re-acquired.
func (mu *fsMutex) Lock(lockTryLimit int8) error {
	tries := 0
	for {
		tries++
		if int(lockTryLimit) > 0 && tries > int(lockTryLimit) {
			return errors.New("can't acquire lock")
		}

		f, err := os.OpenFile(mu.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			// We acquired the lock. Stamp metadata for debugging.
			_, _ = f.WriteString(fmt.Sprintf("%d\n%d\n", os.Getpid(), time.Now().Unix()))
			_ = f.Close()
			mu.locked = true
			return nil
		}

		// If it's some error other than "already exists", bail.
		if !errors.Is(err, os.ErrExist) {
			return err
		}

		// Lock exists: check if it's stale.
		info, statErr := os.Stat(mu.lockPath)
		if statErr != nil {
			// If vanished between calls, just retry.
			if errors.Is(statErr, os.ErrNotExist) {
				continue
			}
			return statErr
		}

		if age := time.Since(info.ModTime()); age > lockStaleAfter {
			// Consider stale. Best-effort remove; the next iteration
			// tries to acquire again.
			_ = os.Remove(mu.lockPath)
			continue
		}

		// Not stale yet → wait and retry.
		time.Sleep(50 * time.Millisecond)
	}
}

// Unlock is idempotent.
func (mu *fsMutex) Unlock() {
	if !mu.locked {
		return
	}
	_ = os.Remove(mu.lockPath)
	mu.locked = false
}
