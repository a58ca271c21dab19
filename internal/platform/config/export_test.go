package config

import "testing"

// CaptureExit runs fn with exit stubbed and returns the recorded code, -1 if none.
func CaptureExit(t *testing.T, fn func()) int {
	t.Helper()
	code := -1
	previous := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = previous })
	fn()
	return code
}
