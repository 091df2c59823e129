//go:build windows

package writer

import "os"

// lockFile is a no-op on windows: LockFileEx support isn't worth the
// syscall plumbing for a single-process CLI tool, and O_APPEND writes are
// already atomic per-call on this platform.
func lockFile(file *os.File) error { return nil }

// unlockFile is the no-op counterpart to lockFile.
func unlockFile(file *os.File) error { return nil }
