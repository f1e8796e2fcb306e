package types

import "time"

// TaskStatus is the lifecycle state of an upload task.
type TaskStatus string

const (
	TaskQueued    TaskStatus = "queued"
	TaskUploading TaskStatus = "uploading"
	TaskSuccess   TaskStatus = "success"
	TaskError     TaskStatus = "error"
)

// UploadTask tracks one accepted file on its way to the backend.
// Tasks stay in the store after they finish until removed explicitly.
type UploadTask struct {
	ID           string     `json:"id"`
	File         FileMeta   `json:"file"`
	DomainID     string     `json:"domainId"`
	Metadata     string     `json:"metadata,omitempty"`
	Status       TaskStatus `json:"status"`
	Progress     int        `json:"progress"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	DocumentID   string     `json:"documentId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
