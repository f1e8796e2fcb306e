package types

import "time"

// IntakeLink is a short-lived URL other devices can post files to.
type IntakeLink struct {
	ID        string    `json:"id"`
	DomainID  string    `json:"domainId"`
	Label     string    `json:"label,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
