package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/tempo-cli/tempo/internal/logger"
)

// NotFoundError is returned by edit/delete operations that reference an
// unknown activity, event, or session. It never propagates as a panic; the
// caller surfaces a message and continues.
type NotFoundError struct {
	Kind string // "activity", "event", "session"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// NotFound builds a NotFoundError for the given kind and identifier.
func NotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
