package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}
	if lock.Path() != lockPath {
		t.Errorf("expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	holder := NewFileLock(lockPath)
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("first TryLock should succeed, got %v, %v", ok, err)
	}

	contender := NewFileLock(lockPath)
	ok, err = contender.TryLock()
	if err != nil {
		t.Fatalf("TryLock returned error: %v", err)
	}
	if ok {
		t.Fatal("second TryLock should fail while lock is held")
	}

	if err := holder.Unlock(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}

	ok, err = contender.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock after release should succeed, got %v, %v", ok, err)
	}
	contender.Unlock()
}

func TestConcurrentLocking(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")
	counterPath := filepath.Join(tmpDir, "counter.txt")
	if err := os.WriteFile(counterPath, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	const goroutines = 5
	const iterations = 10

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := NewFileLock(lockPath)
				if err := lock.Lock(); err != nil {
					t.Errorf("failed to acquire lock: %v", err)
					return
				}
				data, _ := os.ReadFile(counterPath)
				n, _ := strconv.Atoi(string(data))
				os.WriteFile(counterPath, []byte(strconv.Itoa(n+1)), 0644)
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(counterPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != strconv.Itoa(goroutines*iterations) {
		t.Errorf("expected counter %d, got %s", goroutines*iterations, got)
	}
}

func TestLockContext_WaitsForRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	holder := NewFileLock(lockPath)
	if err := holder.Lock(); err != nil {
		t.Fatalf("failed to acquire holder lock: %v", err)
	}

	released := make(chan struct{})
	go func() {
		time.Sleep(100 * time.Millisecond)
		holder.Unlock()
		close(released)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	contender := NewFileLock(lockPath)
	start := time.Now()
	if err := contender.LockContext(ctx); err != nil {
		t.Fatalf("LockContext should succeed: %v", err)
	}
	if wait := time.Since(start); wait < 90*time.Millisecond {
		t.Errorf("expected to wait for lock, waited only %v", wait)
	}
	contender.Unlock()
	<-released
}

func TestLockContext_Timeout(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	holder := NewFileLock(lockPath)
	if err := holder.Lock(); err != nil {
		t.Fatalf("failed to acquire holder lock: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := NewFileLock(lockPath).LockContext(ctx)
	if !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reqs.yaml")

	if err := AtomicWrite(target, []byte("requirements: []\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if err := AtomicWrite(target, []byte("requirements:\n  - id: R1\n")); err != nil {
		t.Fatalf("AtomicWrite overwrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "requirements:\n  - id: R1\n" {
		t.Errorf("unexpected content %q", data)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("expected 0644, got %o", perm)
	}
}

func TestAtomicWrite_CreatesDirectoryAndLeavesNoTemp(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "docs", "reviews", "lint_advice.md")

	if err := AtomicWrite(target, []byte("# Advice\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "lint_advice.md" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the target file, got %v", names)
	}
}

func TestLockPath(t *testing.T) {
	got := LockPath(filepath.Join("docs", "reqs.yaml"))
	want := filepath.Join("docs", ".reqs.yaml.lock")
	if got != want {
		t.Errorf("LockPath = %s, want %s", got, want)
	}
}

func TestLockAndWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "reqs.yaml")

	if err := LockAndWrite(context.Background(), target, []byte("requirements: []\n")); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "requirements: []\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestLockAndWrite_RespectsHeldLock(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reqs.yaml")

	holder := NewFileLock(LockPath(target))
	if err := holder.Lock(); err != nil {
		t.Fatal(err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	err := LockAndWrite(ctx, target, []byte("x"))
	if !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("target should not be written while the lock is held")
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reqs.yaml")

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			content := strings.Repeat(fmt.Sprintf("writer-%d\n", id), 100)
			if err := LockAndWrite(context.Background(), target, []byte(content)); err != nil {
				t.Errorf("writer %d failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 100 {
		t.Fatalf("expected 100 lines from a single writer, got %d", len(lines))
	}
	for _, line := range lines {
		if line != lines[0] {
			t.Fatalf("interleaved writes detected: %q vs %q", lines[0], line)
		}
	}
}
