package exporter

import (
	"fmt"
	"strings"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatQuantity renders an aggregated quantity: sums and counts are whole
// numbers and should not drag decimal places into the output, means keep two.
func formatQuantity(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return formatFloat(f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// seriesFileName derives a CSV file name from a series name
func seriesFileName(series string) string {
	return strings.ToLower(strings.ReplaceAll(series, " ", "_")) + ".csv"
}
