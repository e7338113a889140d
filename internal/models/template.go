package models

import "time"

// InterviewTemplate is a recruiter-owned question bank. Interviews may
// reference one; the completion calculator uses its question count.
type InterviewTemplate struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	RecruiterID uint               `gorm:"not null;index" json:"recruiter_id"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Description string             `gorm:"type:text" json:"description,omitempty"`
	Questions   []TemplateQuestion `gorm:"foreignKey:TemplateID" json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type TemplateQuestion struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TemplateID uint   `gorm:"not null;index" json:"template_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Category   string `gorm:"size:50" json:"category,omitempty"`
	OrderNum   int    `gorm:"not null" json:"order_num"`
}
