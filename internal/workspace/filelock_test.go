package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func releaseLock(t *testing.T, lock *fileLock) {
	t.Helper()
	if err := lock.release(); err != nil {
		t.Logf("Warning: release failed: %v", err)
	}
}

func TestFileLock_AcquireCreatesLockFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	lock := newFileLock(dir)
	defer releaseLock(t, lock)

	if err := lock.acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if !lock.held() {
		t.Error("Expected lock to be held")
	}
	if _, err := os.Stat(filepath.Join(dir, LockFilename)); err != nil {
		t.Errorf("Expected lock file: %v", err)
	}
}

func TestFileLock_Timeout(t *testing.T) {
	dir := t.TempDir()

	lock1 := newFileLock(dir)
	if err := lock1.acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer releaseLock(t, lock1)

	lock2 := newFileLock(dir)
	start := time.Now()
	err := lock2.acquire(context.Background(), 100*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("Expected ErrLockTimeout, got: %v", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("Expected at least 100ms to elapse, got %v", elapsed)
	}
	if lock2.held() {
		t.Error("Expected timed out lock not to be held")
	}
}

func TestFileLock_ContextCanceled(t *testing.T) {
	dir := t.TempDir()

	lock1 := newFileLock(dir)
	if err := lock1.acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer releaseLock(t, lock1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	lock2 := newFileLock(dir)
	if err := lock2.acquire(ctx, 10*time.Second); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got: %v", err)
	}
}

func TestFileLock_AcquiresAfterRelease(t *testing.T) {
	dir := t.TempDir()

	lock1 := newFileLock(dir)
	if err := lock1.acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = lock1.release()
	}()

	lock2 := newFileLock(dir)
	defer releaseLock(t, lock2)
	if err := lock2.acquire(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("Expected lock after release, got: %v", err)
	}
}

func TestFileLock_ReleaseUnheld(t *testing.T) {
	lock := newFileLock(t.TempDir())
	if err := lock.release(); err != nil {
		t.Errorf("Expected no-op release, got: %v", err)
	}
}

func TestWithLock_SerializesWriters(t *testing.T) {
	dir := t.TempDir()
	var inside atomic.Int32
	errs := make(chan error, 4)

	for range 4 {
		go func() {
			errs <- withLock(context.Background(), dir, 5*time.Second, func() error {
				if inside.Add(1) != 1 {
					return errors.New("concurrent holders")
				}
				time.Sleep(20 * time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}

	for range 4 {
		if err := <-errs; err != nil {
			t.Errorf("withLock failed: %v", err)
		}
	}
}

func TestWithLock_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	err := withLock(context.Background(), t.TempDir(), time.Second, func() error { return want })
	if !errors.Is(err, want) {
		t.Errorf("Expected fn error, got %v", err)
	}
}
