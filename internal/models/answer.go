package models

import "time"

type InterviewAnswer struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	InterviewID uint `gorm:"not null;index:idx_answer_order" json:"interview_id"`

	// QuestionID is a business key, not a foreign key: AI-generated
	// questions have no template row. The same question may be answered
	// more than once; updates target the most recent entry.
	QuestionID   uint   `gorm:"not null;index" json:"question_id"`
	QuestionText string `gorm:"type:text;not null" json:"question_text"`
	AnswerText   string `gorm:"type:text;not null" json:"answer_text"`

	AnsweredAt      time.Time `gorm:"not null;index:idx_answer_order" json:"answered_at"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`

	Score          *float64 `json:"score,omitempty"`
	RecruiterNotes string   `gorm:"type:text" json:"recruiter_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
