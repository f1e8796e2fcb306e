package notify

import (
	"fmt"
	"strings"

	"github.com/wrenko/ragsend-go/types"
)

// FileRejected reports a file refused before upload, with every reason
// it was refused joined into one message.
func FileRejected(fileName string, reasons []string) types.Notification {
	return types.Notification{
		Kind:       types.NotifyError,
		Title:      "File rejected",
		Message:    fmt.Sprintf("%s: %s", fileName, strings.Join(reasons, "; ")),
		DurationMs: ErrorDurationMs,
	}
}

func UploadSucceeded(fileName string) types.Notification {
	return types.Notification{
		Kind:       types.NotifySuccess,
		Title:      "Upload successful",
		Message:    fmt.Sprintf("%s uploaded", fileName),
		DurationMs: SuccessDurationMs,
	}
}

func UploadFailed(fileName, errMsg string) types.Notification {
	return types.Notification{
		Kind:       types.NotifyError,
		Title:      "Upload failed",
		Message:    fmt.Sprintf("%s: %s", fileName, errMsg),
		DurationMs: ErrorDurationMs,
	}
}

// Simple wraps a plain informational toast.
func Simple(title, message string) types.Notification {
	return types.Notification{
		Kind:       types.NotifyInfo,
		Title:      title,
		Message:    message,
		DurationMs: SuccessDurationMs,
	}
}
