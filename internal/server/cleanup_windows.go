//go:build windows

package server

// cleanupSocket is a no-op on Windows; the OS reclaims named pipes
// when the last handle closes.
func cleanupSocket(string) error {
	return nil
}
