package model

import "time"

type ActivityType string

const (
	ActivityNotificationRead    ActivityType = "notification.read"
	ActivityNotificationReadAll ActivityType = "notification.read_all"
	ActivityNotificationRemoved ActivityType = "notification.removed"
	ActivityChatMessageSent     ActivityType = "chat.message_sent"
	ActivityChatAutoReply       ActivityType = "chat.auto_reply"
	ActivityChatRead            ActivityType = "chat.read"
	ActivityFormSubmitted       ActivityType = "form.submitted"
	ActivitySessionEnded        ActivityType = "session.ended"
)

// ActivityEvent reports a user action taken on the dashboard.
type ActivityEvent struct {
	ID         string                 `json:"id"`
	Type       ActivityType           `json:"type"`
	UserID     string                 `json:"user_id"`
	Role       Role                   `json:"role"`
	ProjectID  string                 `json:"project_id,omitempty"`
	SubjectID  string                 `json:"subject_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
