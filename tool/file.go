package tool

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// FileExt returns the lowercase extension of name without the leading dot.
func FileExt(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// DetectFileType guesses a MIME type from the file name extension.
func DetectFileType(name string) string {
	fileType := mime.TypeByExtension(filepath.Ext(name))
	if fileType == "" {
		return "application/octet-stream" // Default MIME type
	}
	if i := strings.Index(fileType, ";"); i >= 0 {
		fileType = strings.TrimSpace(fileType[:i])
	}
	return fileType
}

// HumanBytes renders a byte count with 1024-based units, "10 MB" style.
// Exact multiples print without a fraction.
func HumanBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	units := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	value := float64(n)
	unit := ""
	for _, u := range units {
		value /= 1024
		unit = u
		if value < 1024 {
			break
		}
	}
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d %s", int64(value), unit)
	}
	return fmt.Sprintf("%.1f %s", value, unit)
}
