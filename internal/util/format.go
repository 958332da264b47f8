package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import "fmt"

// FormatSeconds formats a recorded execution duration for display.
// Returns "—" when no duration was recorded.
func FormatSeconds(seconds *float64) string {
	if seconds == nil {
		return "—"
	}
	return fmt.Sprintf("%.2fs", *seconds)
}
