package model

import "time"

// MeetingMinute records a site meeting or daily work report (RDO).
type MeetingMinute struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Participants []string  `json:"participants"`
	Summary      string    `json:"summary"`
	Decisions    []string  `json:"decisions"`
}
