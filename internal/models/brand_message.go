package models

import "time"

// BrandMessage is a generated piece of brand content attached to a project.
type BrandMessage struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tone      string    `json:"tone,omitempty"`
	Channel   string    `json:"channel,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateBrandMessageRequest is forwarded to the backend's generation
// endpoint; the backend performs the actual AI work and credit accounting.
type GenerateBrandMessageRequest struct {
	ProjectID string `json:"project_id"`
	Prompt    string `json:"prompt"`
	Tone      string `json:"tone,omitempty"`
	Channel   string `json:"channel,omitempty"`
}
