//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	daemonStartWait = 2 * time.Second
	cmdTimeout      = 30 * time.Second
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary once for all tests
	tmpDir, err := os.MkdirTemp("", "nodoff-e2e-bin-*")
	if err != nil {
		panic(fmt.Sprintf("failed to create temp dir: %v", err))
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "nodoff")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = getProjectRoot()
	if out, err := cmd.CombinedOutput(); err != nil {
		panic(fmt.Sprintf("failed to build binary: %s: %v", string(out), err))
	}

	os.Exit(m.Run())
}

// daemonEnv builds an environment that isolates the daemon under test
// from any real daemon on the machine running the tests.
func daemonEnv(t *testing.T) []string {
	t.Helper()
	stateDir := t.TempDir()
	return append(os.Environ(),
		"NODOFF_SOCKET_PATH="+filepath.Join(stateDir, "nodoff.sock"),
		"NODOFF_PID_FILE="+filepath.Join(stateDir, "nodoff.pid"),
	)
}

// startDaemon runs the daemon in the foreground as a child process and
// returns a cleanup function that stops it.
func startDaemon(t *testing.T, env []string) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	daemonCmd := exec.CommandContext(ctx, binaryPath, "daemon")
	daemonCmd.Env = env
	daemonCmd.Stdout = os.Stdout
	daemonCmd.Stderr = os.Stderr
	if err := daemonCmd.Start(); err != nil {
		cancel()
		t.Fatalf("Failed to start daemon: %v", err)
	}

	// Wait for daemon to be ready
	time.Sleep(daemonStartWait)

	return func() {
		// Try graceful stop first
		stopCmd := exec.Command(binaryPath, "stop-daemon")
		stopCmd.Env = env
		_ = stopCmd.Run()

		// Cancel context to trigger kill
		cancel()

		// Wait for daemon to exit (with timeout)
		done := make(chan error, 1)
		go func() { done <- daemonCmd.Wait() }()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			_ = daemonCmd.Process.Kill()
		}
	}
}

// runCLI runs one CLI command against the daemon and returns its
// combined output. Command failures are fatal; the commands under test
// report their own errors on stdout with a zero exit code.
func runCLI(t *testing.T, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = env
	output, err := runWithTimeout(cmd, cmdTimeout)
	if err != nil {
		t.Fatalf("%s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return output
}

// supportedAction picks a power action the host can perform, skipping
// the test on hosts (such as minimal CI containers) that support none.
func supportedAction(t *testing.T, env []string) string {
	t.Helper()
	out := runCLI(t, env, "actions")
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "supported" {
			return fields[0]
		}
	}
	t.Skipf("no power action supported on this host:\n%s", out)
	return ""
}

func TestCLIScheduleLifecycle(t *testing.T) {
	env := daemonEnv(t)
	stop := startDaemon(t, env)
	defer stop()

	action := supportedAction(t, env)

	// Arm a countdown far enough away that nothing fires during the test.
	out := runCLI(t, env, "start", action, "--in", "30")
	if !strings.Contains(out, "Schedule Armed") {
		t.Fatalf("start output missing confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Fires At") {
		t.Fatalf("start output missing fire time:\n%s", out)
	}

	out = runCLI(t, env, "status")
	if !strings.Contains(out, action+" in ") {
		t.Fatalf("status output missing countdown:\n%s", out)
	}

	out = runCLI(t, env, "cancel")
	if !strings.Contains(out, "Schedule cancelled.") {
		t.Fatalf("cancel output missing confirmation:\n%s", out)
	}

	out = runCLI(t, env, "status")
	if !strings.Contains(out, "cancelled ("+action+")") {
		t.Fatalf("status after cancel should report the cancelled schedule:\n%s", out)
	}
}

func TestCLIScheduleAtClock(t *testing.T) {
	env := daemonEnv(t)
	stop := startDaemon(t, env)
	defer stop()

	action := supportedAction(t, env)

	// A clock target one hour out, rounded to the minute.
	at := time.Now().Add(time.Hour).Format("15:04")
	out := runCLI(t, env, "start", action, "--at", at)
	if !strings.Contains(out, "Schedule Armed") {
		t.Fatalf("start --at output missing confirmation:\n%s", out)
	}

	out = runCLI(t, env, "cancel")
	if !strings.Contains(out, "Schedule cancelled.") {
		t.Fatalf("cancel output missing confirmation:\n%s", out)
	}
}

func TestCLIDaemonVersion(t *testing.T) {
	env := daemonEnv(t)
	stop := startDaemon(t, env)
	defer stop()

	out := runCLI(t, env, "version")
	if !strings.Contains(out, "Daemon:") {
		t.Fatalf("version output missing daemon section:\n%s", out)
	}
}

func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	done := make(chan error, 1)
	var output []byte
	var err error

	go func() {
		output, err = cmd.CombinedOutput()
		done <- err
	}()

	select {
	case <-done:
		return string(output), err
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return "", fmt.Errorf("timeout after %v", timeout)
	}
}

func getProjectRoot() string {
	// Walk up from test file to find go.mod
	dir, err := os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("failed to get working directory: %v", err))
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("could not find project root (go.mod)")
		}
		dir = parent
	}
}
