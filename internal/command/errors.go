package command

import (
	"errors"
	"fmt"
)

// ExecutionError reports a command that failed while performing its side
// effect. It carries the command's identity so callers can surface which
// command broke without inspecting the registry.
type ExecutionError struct {
	CommandName string
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.CommandName, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError wraps err with the command's identity.
func NewExecutionError(name string, err error) *ExecutionError {
	return &ExecutionError{CommandName: name, Err: err}
}

// AsExecutionError unwraps err into an ExecutionError when it is one.
func AsExecutionError(err error) (*ExecutionError, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr, true
	}
	return nil, false
}
