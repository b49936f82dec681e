// Package term reports whether a file descriptor is attached to a terminal.
package term

import "os"

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isTerminal(fd)
}

// IsInteractive reports whether f is a terminal. A nil file is not.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f.Fd())
}
