//go:build unix

package db

import (
	"os"
	"syscall"
)

// tryLock takes a non-blocking exclusive flock; errors when another process
// holds it.
func (l *writeLocker) tryLock() error {
	return syscall.Flock(int(l.lockFile.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func (l *writeLocker) unlock() {
	if l.lockFile != nil {
		syscall.Flock(int(l.lockFile.Fd()), syscall.LOCK_UN)
	}
}

// isProcessAlive probes the pid with signal 0. FindProcess never fails on
// Unix, so the signal is the actual liveness check.
func isProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
