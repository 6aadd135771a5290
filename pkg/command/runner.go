package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"chaos-service/pkg/cerrors"
)

// Runner executes a single external command bounded by a timeout and returns
// its captured standard output. Exactly one process is spawned per call and
// no retries happen at this layer; retry policy belongs to callers.
type Runner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (string, error)
}

type osRunner struct{}

// NewRunner returns a Runner backed by the host's process spawning capability
func NewRunner() Runner {
	return &osRunner{}
}

func (r *osRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return "", cerrors.Error{
			ErrorCode: cerrors.ErrorTypeGeneric,
			Phase:     "CommandRun",
			Reason:    fmt.Sprintf("timeout must be positive, got %v", timeout),
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)

	// storing the output inside the buffers for classification below
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if runCtx.Err() == context.DeadlineExceeded {
		return "", cerrors.Error{
			ErrorCode: cerrors.ErrorTypeCommandTimeout,
			Phase:     "CommandRun",
			Target:    name,
			Reason:    fmt.Sprintf("command did not complete within %v", timeout),
		}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return "", cerrors.Error{
			ErrorCode: cerrors.ErrorTypeCommandNotFound,
			Phase:     "CommandRun",
			Target:    name,
			Reason:    fmt.Sprintf("binary not available on the host: %v", err),
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", cerrors.Error{
			ErrorCode: cerrors.ErrorTypeCommandNonZeroExit,
			Phase:     "CommandRun",
			Target:    name,
			Reason:    fmt.Sprintf("exit code %d, stderr: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String())),
		}
	}

	return "", cerrors.Error{
		ErrorCode: cerrors.ErrorTypeGeneric,
		Phase:     "CommandRun",
		Target:    name,
		Reason:    err.Error(),
	}
}
