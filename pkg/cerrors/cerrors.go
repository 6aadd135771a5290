package cerrors

import (
	"fmt"

	"github.com/palantir/stacktrace"
)

type ErrorType string

const (
	ErrorTypeGeneric            ErrorType = "GENERIC_ERROR"
	ErrorTypeCommandNotFound    ErrorType = "COMMAND_NOT_FOUND"
	ErrorTypeCommandTimeout     ErrorType = "COMMAND_TIMEOUT"
	ErrorTypeCommandNonZeroExit ErrorType = "COMMAND_NON_ZERO_EXIT"
	ErrorTypeClusterUnreachable ErrorType = "CLUSTER_UNREACHABLE"
	ErrorTypeScenarioValidation ErrorType = "SCENARIO_VALIDATION_ERROR"
)

// Error is the typed failure used across the chaos pipeline. Phase carries
// the operation that failed, Target the resource it failed on.
type Error struct {
	ErrorCode ErrorType
	Phase     string
	Target    string
	Reason    string
}

func (e Error) Error() string {
	switch {
	case e.Phase == "" && e.Target == "":
		return e.Reason
	case e.Target == "":
		return fmt.Sprintf("[%s]: %s", e.Phase, e.Reason)
	case e.Phase == "":
		return fmt.Sprintf("target '%s': %s", e.Target, e.Reason)
	}
	return fmt.Sprintf("[%s]: target '%s', %s", e.Phase, e.Target, e.Reason)
}

func (e Error) UserFriendly() bool {
	return true
}

func (e Error) ErrorType() ErrorType {
	return e.ErrorCode
}

type userFriendly interface {
	UserFriendly() bool
	ErrorType() ErrorType
}

// IsUserFriendly returns true if err is safe to surface in a response body
func IsUserFriendly(err error) bool {
	ufe, ok := err.(userFriendly)
	return ok && ufe.UserFriendly()
}

// GetErrorType returns the type of error if the error is user-friendly
func GetErrorType(err error) ErrorType {
	if ufe, ok := err.(userFriendly); ok {
		return ufe.ErrorType()
	}
	return ErrorTypeGeneric
}

// GetRootCauseAndErrorCode unwraps a stacktrace-propagated error down to its
// root cause and reports the root's error code
func GetRootCauseAndErrorCode(err error) (string, ErrorType) {
	rootCause := stacktrace.RootCause(err)
	errorType := GetErrorType(rootCause)
	if !IsUserFriendly(rootCause) {
		return err.Error(), errorType
	}
	return rootCause.Error(), errorType
}

// IsCommandFailure reports whether err is one of the recoverable command or
// cluster failure kinds that the executors degrade on
func IsCommandFailure(err error) bool {
	switch GetErrorType(stacktrace.RootCause(err)) {
	case ErrorTypeCommandNotFound, ErrorTypeCommandTimeout, ErrorTypeCommandNonZeroExit, ErrorTypeClusterUnreachable:
		return true
	}
	return false
}
