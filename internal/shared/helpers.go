// Package shared provides common utility functions used across multiple
// packages in the getatoms codebase.
package shared

import (
	"fmt"
	"strings"
)

// HTTPStatusError creates a formatted error for an HTTP response the
// caller rejected.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// SkipLine formats a per-bug diagnostic the way batch_stabilize expects
// comment lines.
func SkipLine(format string, args ...interface{}) string {
	return "# " + fmt.Sprintf(format, args...)
}
