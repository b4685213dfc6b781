// Package utils holds small helpers shared across the CLI.
package utils

import "fmt"

var sizeSuffixes = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB"}

// PrettySize formats a byte count as a human readable string using binary
// units. Sizes below one KiB are printed as whole bytes, larger sizes with
// one decimal digit, e.g. "512 B", "23.5 GiB".
func PrettySize(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	for _, suffix := range sizeSuffixes {
		if value < 1024 {
			if suffix == "B" {
				return fmt.Sprintf("%d B", size)
			}
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f YiB", value)
}
