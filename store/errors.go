package store

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
)

// ErrNotFound covers true absence and out-of-tenant access alike, so a caller
// cannot probe for the existence of another tenant's records.
var ErrNotFound = errors.New("opportunity not found")

type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError enumerates every failing field of a rejected input.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(issues ...FieldIssue) *ValidationError {
	return &ValidationError{Issues: issues}
}

// StoreError wraps a failure of the durable backing store. The stack is
// captured at wrap time for the server log; callers only ever see a generic
// message.
type StoreError struct {
	Message string
	Err     error
	Stack   []byte
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Internal(message string, err error) *StoreError {
	var stack []byte
	if stackErr, ok := err.(*goerrors.Error); ok {
		stack = stackErr.Stack()
	} else if err != nil {
		stack = goerrors.Wrap(err, 2).Stack()
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &StoreError{
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}
