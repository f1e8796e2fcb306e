package types

import "time"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)

type NotificationAction struct {
	Label string `json:"label"`
}

// Notification is one toast. DurationMs 0 means it stays until dismissed.
type Notification struct {
	ID         string              `json:"id"`
	Kind       NotificationKind    `json:"kind"`
	Title      string              `json:"title"`
	Message    string              `json:"message"`
	DurationMs int                 `json:"durationMs"`
	Action     *NotificationAction `json:"action,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}
