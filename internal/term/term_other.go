//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd

package term

// Terminal detection is not implemented here; callers treat input as piped.
func isTerminal(_ uintptr) bool {
	return false
}
