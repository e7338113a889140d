package models

import "time"

const (
	InterviewStatusScheduled  = "scheduled"
	InterviewStatusInProgress = "in_progress"
	InterviewStatusPaused     = "paused"
	InterviewStatusCompleted  = "completed"
	InterviewStatusCancelled  = "cancelled"
	InterviewStatusDeleted    = "deleted"
)

const (
	InterviewModeStandard = "standard"
	InterviewModeAI       = "ai"
)

type Interview struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	CandidateID uint  `gorm:"not null;index" json:"candidate_id"`
	Candidate   User  `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	RecruiterID uint  `gorm:"not null;index" json:"recruiter_id"`
	Recruiter   User  `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
	TemplateID  *uint `gorm:"index" json:"template_id,omitempty"`

	Mode            string    `gorm:"size:10;not null;default:'standard'" json:"mode"`
	InterviewDate   time.Time `gorm:"not null" json:"interview_date"`
	InterviewTime   string    `gorm:"size:5;not null" json:"interview_time"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`

	Status       string     `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	StatusReason string     `gorm:"type:text" json:"status_reason,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`

	// Version implements optimistic locking: every mutation checks the
	// version it read and bumps it, so concurrent writers lose cleanly
	// instead of overwriting each other.
	Version int `gorm:"not null;default:0" json:"version"`

	Answers   []InterviewAnswer `gorm:"foreignKey:InterviewID" json:"answers,omitempty"`
	AISession *AISession        `gorm:"foreignKey:InterviewID" json:"ai_session,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TerminalStatus reports whether the status admits no further lifecycle
// transitions (delete is an administrative override, not a transition).
func TerminalStatus(status string) bool {
	return status == InterviewStatusCompleted ||
		status == InterviewStatusCancelled ||
		status == InterviewStatusDeleted
}
