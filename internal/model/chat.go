package model

import "time"

// ChatMessage is one entry of a project chat thread.
type ChatMessage struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	SenderName string    `json:"sender_name"`
	SenderRole Role      `json:"sender_role"`
	Timestamp  time.Time `json:"timestamp"`
	ProjectID  string    `json:"project_id"`
	Read       bool      `json:"read"`
}
