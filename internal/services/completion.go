package services

import (
	"errors"
	"math"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"gorm.io/gorm"
)

// CompletionService derives progress from the record. It never mutates
// and is safe to call in any status.
type CompletionService struct {
	db *gorm.DB
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{db: db}
}

type CompletionStats struct {
	InterviewID          uint     `json:"interview_id"`
	Status               string   `json:"status"`
	TotalQuestions       int      `json:"total_questions"`
	AnsweredQuestions    int      `json:"answered_questions"`
	CompletionPercentage int      `json:"completion_percentage"`
	RemainingQuestions   int      `json:"remaining_questions"`
	DurationSeconds      *int     `json:"duration_seconds,omitempty"`
	AverageScore         *float64 `json:"average_score,omitempty"`
}

func (s *CompletionService) Stats(actor authz.Actor, interviewID uint) (*CompletionStats, error) {
	const op = "completion_stats"

	var interview models.Interview
	if err := s.db.First(&interview, interviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "interview not found")
		}
		return nil, err
	}
	if interview.Status == models.InterviewStatusDeleted {
		return nil, apperrors.NotFound(op, "interview not found")
	}
	if err := authz.Authorize(actor, authz.OpViewStats, &interview); err != nil {
		return nil, err
	}

	totalQuestions := 0
	if interview.TemplateID != nil {
		var count int64
		if err := s.db.Model(&models.TemplateQuestion{}).
			Where("template_id = ?", *interview.TemplateID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		totalQuestions = int(count)
	}

	var answered int64
	if err := s.db.Model(&models.InterviewAnswer{}).
		Where("interview_id = ?", interviewID).
		Count(&answered).Error; err != nil {
		return nil, err
	}

	stats := &CompletionStats{
		InterviewID:       interviewID,
		Status:            interview.Status,
		TotalQuestions:    totalQuestions,
		AnsweredQuestions: int(answered),
	}

	if totalQuestions > 0 {
		stats.CompletionPercentage = int(math.Round(100 * float64(answered) / float64(totalQuestions)))
		remaining := totalQuestions - int(answered)
		if remaining < 0 {
			remaining = 0
		}
		stats.RemainingQuestions = remaining
	}

	if interview.StartTime != nil && interview.EndTime != nil {
		d := int(interview.EndTime.Sub(*interview.StartTime).Seconds())
		stats.DurationSeconds = &d
	}

	var avg *float64
	row := s.db.Model(&models.InterviewAnswer{}).
		Where("interview_id = ? AND score IS NOT NULL", interviewID).
		Select("AVG(score)").Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageScore = avg
	}

	return stats, nil
}
