// Package utils provides shared utility functions.
package utils

import "fmt"

// FormatDollars formats a price or gain with a $ prefix and two
// decimal places.
func FormatDollars(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// FormatPercent formats a percentage with two decimal places and a
// literal % suffix.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatSignedPercent formats a percentage with an explicit sign for
// positive values.
func FormatSignedPercent(value float64) string {
	if value > 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}
