// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
)

// BytesToMegabytes converts a byte count to binary megabytes.
func BytesToMegabytes(bytes uint64) float64 {
	return float64(bytes) / MiB
}

// FormatBytes formats bytes with appropriate binary units (B, KiB, MiB, GiB).
func FormatBytes(bytes uint64) string {
	bf := float64(bytes)
	switch {
	case bf >= GiB:
		return fmt.Sprintf("%.2f GiB", bf/GiB)
	case bf >= MiB:
		return fmt.Sprintf("%.2f MiB", bf/MiB)
	case bf >= KiB:
		return fmt.Sprintf("%.2f KiB", bf/KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatMegabytes formats a megabyte value with two decimals.
func FormatMegabytes(mb float64) string {
	return fmt.Sprintf("%.2f MB", mb)
}

// FormatFPS formats a frame rate with two decimals.
func FormatFPS(fps float64) string {
	return fmt.Sprintf("%.2f fps", fps)
}

// FormatResolution formats pixel dimensions as WxH.
func FormatResolution(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatDurationFromSecs formats seconds as HH:MM:SS from an int64.
func FormatDurationFromSecs(secs int64) string {
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Pluralize returns singular when n == 1 and plural otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
