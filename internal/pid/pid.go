package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/veska/keywatch/internal/errors"
)

const pidFile = "keywatch.pid"

func path() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Write writes the current process ID to the PID file. It fails with
// ErrAlreadyRunning if the file points at a live process.
func Write() error {
	errFactory := errors.New()
	pid := os.Getpid()

	if running, _ := read(); running > 0 && alive(running) {
		return errFactory.WithData(errors.ErrAlreadyRunning, running)
	}

	if err := os.WriteFile(path(), []byte(strconv.Itoa(pid)), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file.
func Remove() error {
	errFactory := errors.New()

	if _, err := os.Stat(path()); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path()); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// SignalRunning sends SIGTERM to the process recorded in the PID file,
// asking a background monitor to shut down gracefully.
func SignalRunning() error {
	errFactory := errors.New()

	pid, err := read()
	if err != nil || pid <= 0 {
		return errFactory.New(errors.ErrNotRunning)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return errFactory.Wrap(errors.ErrNotRunning, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return errFactory.WithData(errors.ErrNotRunning, pid)
	}

	return nil
}

func read() (int, error) {
	raw, err := os.ReadFile(path())
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(string(raw)))
}

func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
