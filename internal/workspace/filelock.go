package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// LockFilename is the lock file guarding writes to a workspace.
const LockFilename = ".arc42.lock"

var (
	// ErrLockTimeout indicates that another process held the workspace lock
	// for longer than the configured timeout.
	ErrLockTimeout = errors.New("workspace lock acquisition timed out")
)

const (
	minLockPoll = 10 * time.Millisecond
	maxLockPoll = 250 * time.Millisecond
)

// fileLock is an exclusive flock(2) on a file. The kernel drops it when the
// process exits, so a crashed writer never leaves a workspace locked.
type fileLock struct {
	path string
	file *os.File
}

func newFileLock(workspace string) *fileLock {
	return &fileLock{path: filepath.Join(workspace, LockFilename)}
}

// acquire polls for the lock with exponential backoff until it is held,
// timeout elapses or ctx is done.
func (l *fileLock) acquire(ctx context.Context, timeout time.Duration) error {
	if err := l.open(); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	poll := minLockPoll

	for {
		err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, syscall.EWOULDBLOCK) {
			l.close()
			return fmt.Errorf("flock failed: %w", err)
		}
		if !time.Now().Before(deadline) {
			l.close()
			return fmt.Errorf("%w after %s (%s)", ErrLockTimeout, timeout, l.path)
		}

		select {
		case <-ctx.Done():
			l.close()
			return ctx.Err()
		case <-time.After(poll):
			poll = min(poll*2, maxLockPoll)
		}
	}
}

// release unlocks and closes the lock file. Releasing an unheld lock is a no-op.
func (l *fileLock) release() error {
	if l.file == nil {
		return nil
	}

	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	if err != nil {
		return fmt.Errorf("flock unlock failed: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("close failed: %w", closeErr)
	}
	return nil
}

func (l *fileLock) held() bool {
	return l.file != nil
}

func (l *fileLock) open() error {
	if l.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	l.file = file
	return nil
}

func (l *fileLock) close() {
	_ = l.file.Close()
	l.file = nil
}

// withLock runs fn while holding the workspace lock.
func withLock(ctx context.Context, workspace string, timeout time.Duration, fn func() error) (err error) {
	lock := newFileLock(workspace)
	if err := lock.acquire(ctx, timeout); err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fn()
}
