package taskrunner

import (
	"errors"
	"fmt"
	"strings"
)

const (
	unknownTaskErrorTemplateConstant         = "unknown task %q"
	duplicateTaskErrorTemplateConstant       = "task %q already registered"
	circularDependencyErrorTemplateConstant  = "circular dependency detected: %s"
	taskFailedErrorTemplateConstant          = "task %q failed: %v"
	circularDependencyChainSeparatorConstant = " => "
)

// ErrTaskNameMissing indicates a task definition without a name.
var ErrTaskNameMissing = errors.New("task name is required")

// UnknownTaskError indicates that a task name is not present in the registry.
type UnknownTaskError struct {
	TaskName string
}

// Error implements the error interface.
func (errorDetails UnknownTaskError) Error() string {
	return fmt.Sprintf(unknownTaskErrorTemplateConstant, errorDetails.TaskName)
}

// DuplicateTaskError indicates that a task name was registered more than once.
type DuplicateTaskError struct {
	TaskName string
}

// Error implements the error interface.
func (errorDetails DuplicateTaskError) Error() string {
	return fmt.Sprintf(duplicateTaskErrorTemplateConstant, errorDetails.TaskName)
}

// CircularDependencyError reports a prerequisite chain that reaches a task already being invoked.
type CircularDependencyError struct {
	Chain []string
}

// Error implements the error interface.
func (errorDetails CircularDependencyError) Error() string {
	return fmt.Sprintf(circularDependencyErrorTemplateConstant, strings.Join(errorDetails.Chain, circularDependencyChainSeparatorConstant))
}

// TaskFailedError annotates an action error with the task that produced it.
type TaskFailedError struct {
	TaskName string
	Err      error
}

// Error implements the error interface.
func (errorDetails TaskFailedError) Error() string {
	return fmt.Sprintf(taskFailedErrorTemplateConstant, errorDetails.TaskName, errorDetails.Err)
}

// Unwrap exposes the underlying action error.
func (errorDetails TaskFailedError) Unwrap() error {
	return errorDetails.Err
}
