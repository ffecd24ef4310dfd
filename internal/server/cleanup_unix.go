//go:build !windows

package server

import "os"

// cleanupSocket removes the socket file. A missing file is fine.
func cleanupSocket(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
