package services

import (
	"errors"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"gorm.io/gorm"
)

// AnswerService is the ledger over an interview's ordered answer
// collection: append while the interview runs, update briefly after,
// score by the evaluator. Insertion order is submission order.
type AnswerService struct {
	db *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{db: db}
}

type SubmitAnswerInput struct {
	QuestionID      uint
	QuestionText    string
	AnswerText      string
	DurationSeconds *int
}

func (s *AnswerService) Submit(actor authz.Actor, interviewID uint, input SubmitAnswerInput) (*models.InterviewAnswer, error) {
	const op = "submit_answer"

	interview, err := s.loadInterview(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpSubmitAnswer, interview); err != nil {
		return nil, err
	}

	if interview.Status != models.InterviewStatusInProgress {
		return nil, apperrors.InvalidState(op, interviewID, interview.Status,
			"answers can only be submitted while the interview is in progress")
	}
	if input.QuestionText == "" || input.AnswerText == "" {
		return nil, apperrors.Validation(op, "question text and answer text are required")
	}

	return s.append(op, interview, input)
}

// append lands the answer together with the interview version bump, so
// a submit racing a lifecycle transition loses instead of appending to
// an interview that is no longer in progress.
func (s *AnswerService) append(op string, interview *models.Interview, input SubmitAnswerInput) (*models.InterviewAnswer, error) {
	answer := models.InterviewAnswer{
		InterviewID:     interview.ID,
		QuestionID:      input.QuestionID,
		QuestionText:    input.QuestionText,
		AnswerText:      input.AnswerText,
		AnsweredAt:      time.Now(),
		DurationSeconds: input.DurationSeconds,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.guardInterview(tx, op, interview); err != nil {
			return err
		}
		return tx.Create(&answer).Error
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// UpdateText edits the most recent answer for a question. Editing is
// allowed while in progress and, by policy, briefly after completion.
func (s *AnswerService) UpdateText(actor authz.Actor, interviewID, questionID uint, newText string, newDuration *int) (*models.InterviewAnswer, error) {
	const op = "update_answer"

	interview, err := s.loadInterview(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpUpdateAnswer, interview); err != nil {
		return nil, err
	}

	if interview.Status != models.InterviewStatusInProgress && interview.Status != models.InterviewStatusCompleted {
		return nil, apperrors.InvalidState(op, interviewID, interview.Status,
			"answers can no longer be edited")
	}
	if newText == "" {
		return nil, apperrors.Validation(op, "answer text is required")
	}

	answer, err := s.latestAnswer(op, interviewID, questionID)
	if err != nil {
		return nil, err
	}

	answer.AnswerText = newText
	if newDuration != nil {
		answer.DurationSeconds = newDuration
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.guardInterview(tx, op, interview); err != nil {
			return err
		}
		return tx.Save(answer).Error
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// Score sets the evaluator's score on the most recent answer for a
// question. It is not gated on status: scoring after completion is the
// normal case.
func (s *AnswerService) Score(actor authz.Actor, interviewID, questionID uint, score float64, recruiterNotes string) (*models.InterviewAnswer, error) {
	const op = "score_answer"

	interview, err := s.loadInterview(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpScoreAnswer, interview); err != nil {
		return nil, err
	}

	if score < 0 || score > 10 {
		return nil, apperrors.Validation(op, "score must be between 0 and 10")
	}

	answer, err := s.latestAnswer(op, interviewID, questionID)
	if err != nil {
		return nil, err
	}

	answer.Score = &score
	if recruiterNotes != "" {
		answer.RecruiterNotes = recruiterNotes
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.guardInterview(tx, op, interview); err != nil {
			return err
		}
		return tx.Save(answer).Error
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

type PartySummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type AnswerSheet struct {
	InterviewID uint                     `json:"interview_id"`
	Status      string                   `json:"status"`
	Candidate   PartySummary             `json:"candidate"`
	Recruiter   PartySummary             `json:"recruiter"`
	Answers     []models.InterviewAnswer `json:"answers"`
}

func (s *AnswerService) List(actor authz.Actor, interviewID uint) (*AnswerSheet, error) {
	const op = "list_answers"

	interview, err := s.loadInterview(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpViewAnswers, interview); err != nil {
		return nil, err
	}

	var answers []models.InterviewAnswer
	if err := s.db.Where("interview_id = ?", interviewID).
		Order("answered_at ASC, id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	var candidate, recruiter models.User
	if err := s.db.First(&candidate, interview.CandidateID).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&recruiter, interview.RecruiterID).Error; err != nil {
		return nil, err
	}

	return &AnswerSheet{
		InterviewID: interviewID,
		Status:      interview.Status,
		Candidate:   PartySummary{ID: candidate.ID, FullName: candidate.FullName, Email: candidate.Email},
		Recruiter:   PartySummary{ID: recruiter.ID, FullName: recruiter.FullName, Email: recruiter.Email},
		Answers:     answers,
	}, nil
}

// latestAnswer picks the most recently submitted answer for a question.
// Duplicates per question are allowed, so "latest" is the one edits and
// scores apply to.
func (s *AnswerService) latestAnswer(op string, interviewID, questionID uint) (*models.InterviewAnswer, error) {
	var answer models.InterviewAnswer
	err := s.db.Where("interview_id = ? AND question_id = ?", interviewID, questionID).
		Order("answered_at DESC, id DESC").
		First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "no answer recorded for this question")
		}
		return nil, err
	}
	return &answer, nil
}

// guardInterview is the same compare-and-swap the lifecycle controller
// runs: the ledger write only lands if the interview version the caller
// read is still current. The bump also stamps the interview's updatedAt.
func (s *AnswerService) guardInterview(tx *gorm.DB, op string, interview *models.Interview) error {
	res := tx.Model(&models.Interview{}).
		Where("id = ? AND version = ?", interview.ID, interview.Version).
		Update("version", interview.Version+1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict(op, interview.ID, "interview was modified concurrently, re-read and retry")
	}
	interview.Version++
	return nil
}

func (s *AnswerService) loadInterview(op string, id uint) (*models.Interview, error) {
	var interview models.Interview
	if err := s.db.First(&interview, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "interview not found")
		}
		return nil, err
	}
	if interview.Status == models.InterviewStatusDeleted {
		return nil, apperrors.NotFound(op, "interview not found")
	}
	return &interview, nil
}
