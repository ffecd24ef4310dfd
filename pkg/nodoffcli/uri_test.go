package nodoffcli

import (
	"errors"
	"net"
	"runtime"
	"testing"
)

// TestParseDaemonURI_ValidUnixSocket verifies that Unix socket URIs are parsed correctly.
// Format: unix:///path/to/socket
func TestParseDaemonURI_ValidUnixSocket(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix URIs are not supported on Windows")
	}

	tests := []struct {
		name        string
		uri         string
		wantScheme  string
		wantAddress string
	}{
		{
			name:        "absolute path",
			uri:         "unix:///tmp/nodoff.sock",
			wantScheme:  "unix",
			wantAddress: "/tmp/nodoff.sock",
		},
		{
			name:        "home directory path",
			uri:         "unix:///home/user/.config/nodoff/daemon.sock",
			wantScheme:  "unix",
			wantAddress: "/home/user/.config/nodoff/daemon.sock",
		},
		{
			name:        "var run path",
			uri:         "unix:///var/run/nodoff.sock",
			wantScheme:  "unix",
			wantAddress: "/var/run/nodoff.sock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ParseDaemonURI(tt.uri)
			if err != nil {
				t.Fatalf("ParseDaemonURI() error = %v, want nil", err)
			}
			if uri.Scheme != tt.wantScheme {
				t.Errorf("Scheme = %q, want %q", uri.Scheme, tt.wantScheme)
			}
			if uri.Address != tt.wantAddress {
				t.Errorf("Address = %q, want %q", uri.Address, tt.wantAddress)
			}
		})
	}
}

// TestParseDaemonURI_ValidTCP verifies that TCP URIs with explicit ports are parsed correctly.
// Format: tcp://host:port
func TestParseDaemonURI_ValidTCP(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		wantScheme  string
		wantAddress string
	}{
		{
			name:        "localhost with port",
			uri:         "tcp://localhost:3941",
			wantScheme:  "tcp",
			wantAddress: "localhost:3941",
		},
		{
			name:        "IP address with port",
			uri:         "tcp://127.0.0.1:3941",
			wantScheme:  "tcp",
			wantAddress: "127.0.0.1:3941",
		},
		{
			name:        "hostname with custom port",
			uri:         "tcp://myserver:8080",
			wantScheme:  "tcp",
			wantAddress: "myserver:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ParseDaemonURI(tt.uri)
			if err != nil {
				t.Fatalf("ParseDaemonURI() error = %v, want nil", err)
			}
			if uri.Scheme != tt.wantScheme {
				t.Errorf("Scheme = %q, want %q", uri.Scheme, tt.wantScheme)
			}
			if uri.Address != tt.wantAddress {
				t.Errorf("Address = %q, want %q", uri.Address, tt.wantAddress)
			}
		})
	}
}

// TestParseDaemonURI_TCPDefaultPort verifies that TCP URIs without a port
// get the default appended.
func TestParseDaemonURI_TCPDefaultPort(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		wantAddress string
	}{
		{
			name:        "localhost no port",
			uri:         "tcp://localhost",
			wantAddress: "localhost:3941",
		},
		{
			name:        "IP address no port",
			uri:         "tcp://127.0.0.1",
			wantAddress: "127.0.0.1:3941",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ParseDaemonURI(tt.uri)
			if err != nil {
				t.Fatalf("ParseDaemonURI() error = %v, want nil", err)
			}
			if uri.Address != tt.wantAddress {
				t.Errorf("Address = %q, want %q", uri.Address, tt.wantAddress)
			}
		})
	}
}

// TestParseDaemonURI_ValidPipe verifies that Windows named pipe URIs are parsed correctly.
// Format: pipe://name
// This test is skipped on Unix platforms.
func TestParseDaemonURI_ValidPipe(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("pipe URIs are Windows-only")
	}

	tests := []struct {
		name        string
		uri         string
		wantAddress string
	}{
		{
			name:        "simple pipe name",
			uri:         "pipe://nodoff",
			wantAddress: `\\.\pipe\nodoff`,
		},
		{
			name:        "pipe name with underscores",
			uri:         "pipe://nodoff_daemon",
			wantAddress: `\\.\pipe\nodoff_daemon`,
		},
		{
			name:        "full pipe path",
			uri:         `pipe://\\.\pipe\custom`,
			wantAddress: `\\.\pipe\custom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ParseDaemonURI(tt.uri)
			if err != nil {
				t.Fatalf("ParseDaemonURI() error = %v, want nil", err)
			}
			if uri.Address != tt.wantAddress {
				t.Errorf("Address = %q, want %q", uri.Address, tt.wantAddress)
			}
		})
	}
}

// TestParseDaemonURI_InvalidScheme verifies that unsupported URI schemes return an error.
func TestParseDaemonURI_InvalidScheme(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{
			name: "http scheme",
			uri:  "http://localhost:8080",
		},
		{
			name: "file scheme",
			uri:  "file:///tmp/socket",
		},
		{
			name: "unknown scheme",
			uri:  "unknown://something",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDaemonURI(tt.uri)
			if err == nil {
				t.Fatal("ParseDaemonURI() error = nil, want error")
			}
			if !errors.Is(err, ErrUnsupportedScheme) {
				t.Errorf("error = %v, want %v", err, ErrUnsupportedScheme)
			}
		})
	}
}

// TestParseDaemonURI_EmptyURI verifies that empty URIs return an error.
func TestParseDaemonURI_EmptyURI(t *testing.T) {
	for _, uri := range []string{"", "   "} {
		_, err := ParseDaemonURI(uri)
		if err == nil {
			t.Fatalf("ParseDaemonURI(%q) error = nil, want error", uri)
		}
		if !errors.Is(err, ErrEmptyURI) {
			t.Errorf("ParseDaemonURI(%q) error = %v, want %v", uri, err, ErrEmptyURI)
		}
	}
}

// TestParseDaemonURI_MalformedURI verifies that malformed URIs return an error.
func TestParseDaemonURI_MalformedURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{
			name: "missing scheme separator",
			uri:  "tcp/localhost:3941",
		},
		{
			name: "scheme without host",
			uri:  "tcp://",
		},
		{
			name: "unix without path",
			uri:  "unix://",
		},
		{
			name: "pipe without name",
			uri:  "pipe://",
		},
		{
			name: "invalid port",
			uri:  "tcp://localhost:invalid",
		},
		{
			name: "port out of range",
			uri:  "tcp://localhost:99999",
		},
		{
			name: "unix with relative path",
			uri:  "unix://relative/path",
		},
		{
			name: "no scheme",
			uri:  "localhost:3941",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDaemonURI(tt.uri)
			if err == nil {
				t.Fatal("ParseDaemonURI() error = nil, want error")
			}
		})
	}
}

// TestParseDaemonURI_EdgeCases verifies edge cases in URI parsing.
func TestParseDaemonURI_EdgeCases(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("edge cases use unix URIs")
	}

	tests := []struct {
		name string
		uri  string
	}{
		{
			name: "unix with double slashes in path",
			uri:  "unix:///tmp//nodoff.sock",
		},
		{
			name: "tcp uppercase scheme",
			uri:  "TCP://localhost:3941",
		},
		{
			name: "unix uppercase scheme",
			uri:  "UNIX:///tmp/socket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDaemonURI(tt.uri); err != nil {
				t.Fatalf("ParseDaemonURI() error = %v, want nil", err)
			}
		})
	}
}

// TestNewClientWithURI_SkipsEnsureDaemon verifies that NewClientWithURI does NOT call ensureDaemon.
// This is critical - when using an explicit URI, we assume the daemon exists and should not spawn it.
func TestNewClientWithURI_SkipsEnsureDaemon(t *testing.T) {
	origEnsureDaemon := ensureDaemonFunc
	origDialURI := dialURIFunc
	defer func() {
		ensureDaemonFunc = origEnsureDaemon
		dialURIFunc = origDialURI
	}()

	ensureDaemonCalled := false
	ensureDaemonFunc = func() error {
		ensureDaemonCalled = true
		return nil
	}

	dialURIFunc = func(uri *DaemonURI) (net.Conn, error) {
		client, server := net.Pipe()
		server.Close()
		return client, nil
	}

	client, err := NewClientWithURI("tcp://localhost:3941")
	if err != nil {
		t.Fatalf("NewClientWithURI() error = %v, want nil", err)
	}
	defer client.Close()

	if ensureDaemonCalled {
		t.Error("ensureDaemon was called, but should be skipped when using explicit URI")
	}
}

// TestNewClientWithURI_ConnectionFails_ReturnsError verifies that connection failures are reported.
func TestNewClientWithURI_ConnectionFails_ReturnsError(t *testing.T) {
	origDialURI := dialURIFunc
	defer func() {
		dialURIFunc = origDialURI
	}()

	dialURIFunc = func(uri *DaemonURI) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}

	_, err := NewClientWithURI("tcp://localhost:3941")
	if err == nil {
		t.Fatal("NewClientWithURI() error = nil, want error")
	}
}
