package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	lockFileName   = "db.lock"
	defaultTimeout = 500 * time.Millisecond
	initialBackoff = 5 * time.Millisecond
	maxBackoff     = 50 * time.Millisecond
)

// writeLocker serializes database writes across processes with an OS file
// lock, so a watch daemon and an admin command cannot interleave writes.
// The OS drops the lock when the holder exits, crashes included.
type writeLocker struct {
	lockPath string
	lockFile *os.File
}

func newWriteLocker(baseDir string) *writeLocker {
	return &writeLocker{
		lockPath: filepath.Join(baseDir, ".nsisync", lockFileName),
	}
}

// acquire takes the exclusive write lock, retrying with capped exponential
// backoff until timeout. The error on timeout names the current holder.
func (l *writeLocker) acquire(timeout time.Duration) error {
	f, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	l.lockFile = f

	deadline := time.Now().Add(timeout)
	backoff := initialBackoff

	for {
		if err := l.tryLock(); err == nil {
			l.writeHolder()
			return nil
		}

		if time.Now().After(deadline) {
			holder := l.readHolder()
			l.lockFile.Close()
			l.lockFile = nil
			return fmt.Errorf("write lock timeout after %v\n  holder: %s\n  try again or check if holder process is stuck", timeout, holder)
		}

		time.Sleep(backoff)
		if backoff < maxBackoff {
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}

// release drops the lock and clears the holder record. Safe to call when
// the lock is not held.
func (l *writeLocker) release() error {
	if l.lockFile == nil {
		return nil
	}

	l.lockFile.Truncate(0)
	l.unlock()
	l.lockFile.Close()
	l.lockFile = nil

	return nil
}

// writeHolder records pid and acquisition time in the lock file, so a
// blocked process can report who holds the lock.
func (l *writeLocker) writeHolder() {
	if l.lockFile == nil {
		return
	}
	l.lockFile.Truncate(0)
	l.lockFile.Seek(0, 0)
	fmt.Fprintf(l.lockFile, "pid:%d\ntime:%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	l.lockFile.Sync()
}

// readHolder reports the current holder, flagging stale records left by a
// dead process.
func (l *writeLocker) readHolder() string {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return "unknown"
	}

	var pid, timestamp string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if strings.HasPrefix(line, "pid:") {
			pid = strings.TrimPrefix(line, "pid:")
		} else if strings.HasPrefix(line, "time:") {
			timestamp = strings.TrimPrefix(line, "time:")
		}
	}
	if pid == "" {
		return "unknown"
	}

	if pidInt, err := strconv.Atoi(pid); err == nil && !isProcessAlive(pidInt) {
		return fmt.Sprintf("pid:%s since %s (STALE - process dead)", pid, timestamp)
	}
	return fmt.Sprintf("pid:%s since %s", pid, timestamp)
}

// tryLock, unlock, and isProcessAlive live in lock_unix.go (flock) and
// lock_windows.go (LockFileEx).
