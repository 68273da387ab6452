package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/botroom/internal/logger"
)

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

// Fatal logs an error and exits the program with exit code 1. Errors that
// were already shown to the operator as a notification are not printed again.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		if !IsNotified(err) {
			fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		}
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

// IsNotified reports whether err (or anything it wraps) has already been
// surfaced to the operator through a notification.
func IsNotified(err error) bool {
	var n interface{ Notified() bool }
	return stderrors.As(err, &n) && n.Notified()
}
