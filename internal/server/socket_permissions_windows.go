//go:build windows

package server

// setSocketPermissions is a no-op on Windows; pipe access is governed
// by the security descriptor on the listener.
func setSocketPermissions(string) {}
