package types

// Wire shapes of the document backend. Field names follow its JSON
// exactly, timestamps arrive as strings and are passed through as-is.

type Document struct {
	ID        string `json:"id"`
	DomainID  string `json:"domain_id"`
	Filename  string `json:"filename"`
	FileType  string `json:"file_type"`
	FilePath  string `json:"file_path,omitempty"`
	FileSize  int64  `json:"file_size"`
	Status    string `json:"status"`
	Metadata  string `json:"metadata,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Domain struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type DomainList struct {
	Domains []Domain `json:"domains"`
	Total   int      `json:"total"`
	Skip    int      `json:"skip"`
	Limit   int      `json:"limit"`
}

type HealthStatus struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}
