package convert

import (
	"fmt"
)

// BytesToHumanReadable formats a byte count with binary units, e.g. "4.2 MB".
func BytesToHumanReadable(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB", "EB"}

	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}
