package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chaos-service/pkg/cerrors"
)

func TestRun_CapturesStdout(t *testing.T) {
	runner := NewRunner()

	out, err := runner.Run(context.Background(), "echo", []string{"hello", "cluster"}, 5*time.Second)

	assert.NoError(t, err)
	assert.Equal(t, "hello cluster", strings.TrimSpace(out))
}

func TestRun_RejectsNonPositiveTimeout(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Run(context.Background(), "echo", []string{"hi"}, 0)

	assert.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeGeneric, cerrors.GetErrorType(err))
}

func TestRun_BinaryNotFound(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Run(context.Background(), "definitely-not-a-binary-on-this-host", nil, 5*time.Second)

	assert.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeCommandNotFound, cerrors.GetErrorType(err))
	assert.True(t, cerrors.IsCommandFailure(err))
}

func TestRun_NonZeroExitCarriesStderr(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Run(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 3"}, 5*time.Second)

	assert.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeCommandNonZeroExit, cerrors.GetErrorType(err))
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestRun_Timeout(t *testing.T) {
	runner := NewRunner()

	start := time.Now()
	_, err := runner.Run(context.Background(), "sleep", []string{"5"}, 150*time.Millisecond)

	assert.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeCommandTimeout, cerrors.GetErrorType(err))
	assert.Less(t, time.Since(start), 3*time.Second, "timeout must bound the call, not the command")
}
