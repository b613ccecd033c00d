package ical

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// The owning parent entity was not passed to a constructor.
	ErrMissingDependency = errors.New("missing dependency")
	// A setter or extension accessor received a value it can't accept.
	ErrInvalidArgument = errors.New("invalid argument")
)

type CustomError struct {
	kind error
	msg  string
	args map[string]any
}

// Create a new custom error of the given kind, which is one of
// ErrMissingDependency or ErrInvalidArgument
func NewCustomError(kind error, msg string, args map[string]any) *CustomError {
	if args == nil {
		args = make(map[string]any)
	}
	return &CustomError{
		kind: kind,
		msg:  msg,
		args: args,
	}
}

// Get the error message
func (e *CustomError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.kind.Error())
	sb.WriteString(": ")
	sb.WriteString(e.msg)
	if len(e.args) == 0 {
		return sb.String()
	}

	keys := make([]string, 0, len(e.args))
	for key := range e.args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sb.WriteString(" |")
	for _, key := range keys {
		sb.WriteString(fmt.Sprintf(" %s: %v", key, e.args[key]))
	}
	return sb.String()
}

// Get the arguments attached to the error
func (e *CustomError) Args() map[string]any {
	return e.args
}

func (e *CustomError) Unwrap() error {
	return e.kind
}

func missingParent(entity string) error {
	return NewCustomError(ErrMissingDependency, entity+" requires a parent", nil)
}

func invalidArgument(msg string, args map[string]any) error {
	return NewCustomError(ErrInvalidArgument, msg, args)
}
