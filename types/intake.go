package types

// FileMeta describes a candidate file before any bytes move.
type FileMeta struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Rejection pairs a refused file with every reason it was refused.
type Rejection struct {
	File    FileMeta `json:"file"`
	Reasons []string `json:"reasons"`
}

// IntakeResult is the outcome of submitting one batch of files.
type IntakeResult struct {
	Tasks      []UploadTask `json:"tasks"`
	Rejections []Rejection  `json:"rejections"`
}
