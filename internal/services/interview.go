package services

import (
	"errors"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/config"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"gorm.io/gorm"
)

// InterviewService is the lifecycle controller: it owns every status
// transition of an interview and the timestamps that go with them.
// Every mutation is version-checked, so two callers racing on the same
// record cannot silently overwrite each other.
type InterviewService struct {
	db         *gorm.DB
	identities *AuthService
	hardDelete bool
	sessionCfg config.SessionConfig
}

func NewInterviewService(db *gorm.DB, identities *AuthService, cfg *config.Config) *InterviewService {
	return &InterviewService{
		db:         db,
		identities: identities,
		hardDelete: cfg.Interview.HardDelete,
		sessionCfg: cfg.Session,
	}
}

type AISessionOptions struct {
	Personality          string `json:"personality"`
	Style                string `json:"style"`
	Difficulty           string `json:"difficulty"`
	EstimatedDurationMin int    `json:"estimated_duration_min"`
}

type CreateInterviewInput struct {
	CandidateEmail  string
	CandidateName   string
	TemplateID      *uint
	InterviewDate   time.Time
	InterviewTime   string
	DurationMinutes int
	Notes           string
	AISession       *AISessionOptions
}

type CreateInterviewResult struct {
	Interview *models.Interview
	// CandidateOneTimePassword is set only when the candidate account was
	// provisioned by this call. It is never stored in the clear.
	CandidateOneTimePassword string
}

func (s *InterviewService) Create(actor authz.Actor, input CreateInterviewInput) (*CreateInterviewResult, error) {
	const op = "create_interview"

	if err := authz.Authorize(actor, authz.OpCreateInterview, nil); err != nil {
		return nil, err
	}

	scheduledAt, err := combineSchedule(input.InterviewDate, input.InterviewTime)
	if err != nil {
		return nil, apperrors.Validation(op, err.Error())
	}
	if !scheduledAt.After(time.Now()) {
		return nil, apperrors.Validation(op, "interview date/time must be in the future")
	}
	if input.DurationMinutes <= 0 {
		input.DurationMinutes = 30
	}

	if input.TemplateID != nil {
		var tmpl models.InterviewTemplate
		if err := s.db.First(&tmpl, *input.TemplateID).Error; err != nil {
			return nil, apperrors.NotFound(op, "template not found")
		}
		if actor.Role == models.RoleRecruiter && tmpl.RecruiterID != actor.ID {
			return nil, apperrors.Forbidden(op, 0, "template belongs to another recruiter")
		}
	}

	candidate, oneTimePassword, err := s.identities.ResolveOrCreateCandidate(input.CandidateEmail, input.CandidateName)
	if err != nil {
		return nil, err
	}

	mode := models.InterviewModeStandard
	if input.AISession != nil {
		mode = models.InterviewModeAI
	}

	interview := models.Interview{
		CandidateID:     candidate.ID,
		RecruiterID:     actor.ID,
		TemplateID:      input.TemplateID,
		Mode:            mode,
		InterviewDate:   input.InterviewDate,
		InterviewTime:   input.InterviewTime,
		DurationMinutes: input.DurationMinutes,
		Status:          models.InterviewStatusScheduled,
		Notes:           input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&interview).Error; err != nil {
			return err
		}
		if input.AISession != nil {
			session := s.newSession(interview.ID, input.AISession)
			if err := tx.Create(session).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Candidate").Preload("Recruiter").Preload("AISession").First(&interview, interview.ID)
	return &CreateInterviewResult{
		Interview:                &interview,
		CandidateOneTimePassword: oneTimePassword,
	}, nil
}

// newSession merges policy defaults with caller overrides. The result is
// write-once: nothing re-validates or rewrites it after creation.
func (s *InterviewService) newSession(interviewID uint, opts *AISessionOptions) *models.AISession {
	session := &models.AISession{
		InterviewID:          interviewID,
		Personality:          s.sessionCfg.DefaultPersonality,
		Style:                s.sessionCfg.DefaultStyle,
		Difficulty:           s.sessionCfg.DefaultDifficulty,
		EstimatedDurationMin: s.sessionCfg.DefaultDurationMin,
	}
	if opts.Personality != "" {
		session.Personality = opts.Personality
	}
	if opts.Style != "" {
		session.Style = opts.Style
	}
	if opts.Difficulty != "" {
		session.Difficulty = opts.Difficulty
	}
	if opts.EstimatedDurationMin > 0 {
		session.EstimatedDurationMin = opts.EstimatedDurationMin
	}
	return session
}

func (s *InterviewService) Get(actor authz.Actor, id uint) (*models.Interview, error) {
	const op = "get_interview"

	var interview models.Interview
	err := s.db.Preload("Candidate").Preload("Recruiter").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answered_at ASC, id ASC")
		}).
		Preload("AISession").
		First(&interview, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "interview not found")
		}
		return nil, err
	}
	if interview.Status == models.InterviewStatusDeleted {
		return nil, apperrors.NotFound(op, "interview not found")
	}

	if err := authz.Authorize(actor, authz.OpViewInterview, &interview); err != nil {
		return nil, err
	}
	return &interview, nil
}

type InterviewSummary struct {
	ID            uint      `json:"id"`
	CandidateName string    `json:"candidate_name"`
	RecruiterName string    `json:"recruiter_name"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status"`
	InterviewDate time.Time `json:"interview_date"`
	InterviewTime string    `json:"interview_time"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *InterviewService) List(actor authz.Actor) ([]InterviewSummary, error) {
	query := s.db.Preload("Candidate").Preload("Recruiter").
		Where("status != ?", models.InterviewStatusDeleted).
		Order("interview_date DESC, created_at DESC")

	switch actor.Role {
	case models.RoleCandidate:
		query = query.Where("candidate_id = ?", actor.ID)
	case models.RoleRecruiter:
		query = query.Where("recruiter_id = ?", actor.ID)
	case models.RoleAdmin:
	default:
		return nil, apperrors.Forbidden("list_interviews", 0, "unknown role")
	}

	var interviews []models.Interview
	if err := query.Find(&interviews).Error; err != nil {
		return nil, err
	}

	result := make([]InterviewSummary, len(interviews))
	for i, iv := range interviews {
		result[i] = InterviewSummary{
			ID:            iv.ID,
			CandidateName: iv.Candidate.FullName,
			RecruiterName: iv.Recruiter.FullName,
			Mode:          iv.Mode,
			Status:        iv.Status,
			InterviewDate: iv.InterviewDate,
			InterviewTime: iv.InterviewTime,
			CreatedAt:     iv.CreatedAt,
		}
	}
	return result, nil
}

// Start moves a scheduled or paused interview into in_progress. The
// start time is recorded on the first entry only; entering from paused
// folds the elapsed pause into the AI session, same as Resume.
func (s *InterviewService) Start(actor authz.Actor, id uint) (*models.Interview, error) {
	const op = "start_interview"

	interview, err := s.load(op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpStartInterview, interview); err != nil {
		return nil, err
	}

	if interview.Status != models.InterviewStatusScheduled && interview.Status != models.InterviewStatusPaused {
		return nil, apperrors.InvalidState(op, id, interview.Status, "interview cannot be started")
	}

	now := time.Now()
	updates := map[string]interface{}{"status": models.InterviewStatusInProgress}
	if interview.StartTime == nil {
		updates["start_time"] = now
	}
	if interview.Status == models.InterviewStatusPaused {
		updates["status_reason"] = ""
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyUpdate(tx, op, interview, updates); err != nil {
			return err
		}
		if interview.AISession != nil {
			sessionUpdates := map[string]interface{}{}
			if interview.AISession.StartTime == nil {
				sessionUpdates["start_time"] = now
			}
			if interview.Status == models.InterviewStatusPaused && interview.AISession.PausedAt != nil {
				sessionUpdates["resumed_at"] = now
				sessionUpdates["total_pause_duration_sec"] =
					FoldPause(interview.AISession.TotalPauseDurationSec, *interview.AISession.PausedAt, now)
			}
			if len(sessionUpdates) > 0 {
				if err := tx.Model(&models.AISession{}).
					Where("interview_id = ?", id).Updates(sessionUpdates).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(actor, id)
}

func (s *InterviewService) Pause(actor authz.Actor, id uint, reason string) (*models.Interview, error) {
	const op = "pause_interview"

	interview, err := s.load(op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpPauseInterview, interview); err != nil {
		return nil, err
	}

	if interview.Status != models.InterviewStatusInProgress {
		return nil, apperrors.InvalidState(op, id, interview.Status, "only an in-progress interview can be paused")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":        models.InterviewStatusPaused,
			"status_reason": reason,
		}
		if err := s.applyUpdate(tx, op, interview, updates); err != nil {
			return err
		}
		if interview.AISession != nil {
			return tx.Model(&models.AISession{}).
				Where("interview_id = ?", id).
				Update("paused_at", now).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(actor, id)
}

func (s *InterviewService) Resume(actor authz.Actor, id uint) (*models.Interview, error) {
	const op = "resume_interview"

	interview, err := s.load(op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpResumeInterview, interview); err != nil {
		return nil, err
	}

	if interview.Status != models.InterviewStatusPaused {
		return nil, apperrors.InvalidState(op, id, interview.Status, "only a paused interview can be resumed")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":        models.InterviewStatusInProgress,
			"status_reason": "",
		}
		if err := s.applyUpdate(tx, op, interview, updates); err != nil {
			return err
		}
		if interview.AISession != nil && interview.AISession.PausedAt != nil {
			return tx.Model(&models.AISession{}).
				Where("interview_id = ?", id).
				Updates(map[string]interface{}{
					"resumed_at": now,
					"total_pause_duration_sec": FoldPause(
						interview.AISession.TotalPauseDurationSec,
						*interview.AISession.PausedAt, now),
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(actor, id)
}

// End completes an interview from in_progress or paused. Ending while
// paused folds the outstanding pause first, so the session totals stay
// consistent: active = total - pause.
func (s *InterviewService) End(actor authz.Actor, id uint) (*models.Interview, error) {
	const op = "end_interview"

	interview, err := s.load(op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpEndInterview, interview); err != nil {
		return nil, err
	}

	if interview.Status != models.InterviewStatusInProgress && interview.Status != models.InterviewStatusPaused {
		return nil, apperrors.InvalidState(op, id, interview.Status, "interview is not running")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":   models.InterviewStatusCompleted,
			"end_time": now,
		}
		if err := s.applyUpdate(tx, op, interview, updates); err != nil {
			return err
		}
		if interview.AISession != nil {
			return tx.Model(&models.AISession{}).
				Where("interview_id = ?", id).
				Updates(sessionTotalsOnEnd(interview, now)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(actor, id)
}

func sessionTotalsOnEnd(interview *models.Interview, endedAt time.Time) map[string]interface{} {
	session := interview.AISession
	totalPause := session.TotalPauseDurationSec
	if interview.Status == models.InterviewStatusPaused && session.PausedAt != nil {
		totalPause = FoldPause(totalPause, *session.PausedAt, endedAt)
	}

	started := endedAt
	if session.StartTime != nil {
		started = *session.StartTime
	} else if interview.StartTime != nil {
		started = *interview.StartTime
	}

	total := int(endedAt.Sub(started).Seconds())
	if total < 0 {
		total = 0
	}
	active := total - totalPause
	if active < 0 {
		active = 0
	}

	return map[string]interface{}{
		"end_time":                 endedAt,
		"total_duration_sec":       total,
		"active_duration_sec":      active,
		"total_pause_duration_sec": totalPause,
	}
}

func (s *InterviewService) Cancel(actor authz.Actor, id uint, reason string) (*models.Interview, error) {
	const op = "cancel_interview"

	interview, err := s.load(op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpCancelInterview, interview); err != nil {
		return nil, err
	}

	if models.TerminalStatus(interview.Status) {
		return nil, apperrors.InvalidState(op, id, interview.Status, "interview already finished")
	}

	updates := map[string]interface{}{
		"status":        models.InterviewStatusCancelled,
		"status_reason": reason,
	}
	if err := s.applyUpdate(s.db, op, interview, updates); err != nil {
		return nil, err
	}
	return s.Get(actor, id)
}

// Delete bypasses the state machine entirely. Depending on policy it
// either hard-removes the record with its answers and session, or parks
// it in the deleted status.
func (s *InterviewService) Delete(actor authz.Actor, id uint) error {
	const op = "delete_interview"

	interview, err := s.load(op, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.OpDeleteInterview, interview); err != nil {
		return err
	}

	if !s.hardDelete {
		return s.applyUpdate(s.db, op, interview, map[string]interface{}{
			"status": models.InterviewStatusDeleted,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if interview.AISession != nil {
			if err := tx.Where("session_id = ?", interview.AISession.ID).
				Delete(&models.TranscriptEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.AISession{}, interview.AISession.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("interview_id = ?", id).Delete(&models.InterviewAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Interview{}, id).Error
	})
}

func (s *InterviewService) load(op string, id uint) (*models.Interview, error) {
	var interview models.Interview
	if err := s.db.Preload("AISession").First(&interview, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "interview not found")
		}
		return nil, err
	}
	if interview.Status == models.InterviewStatusDeleted && op != "delete_interview" {
		return nil, apperrors.NotFound(op, "interview not found")
	}
	return &interview, nil
}

// applyUpdate is the compare-and-swap at the heart of every transition:
// the update only lands if the version the caller read is still current.
func (s *InterviewService) applyUpdate(tx *gorm.DB, op string, interview *models.Interview, updates map[string]interface{}) error {
	updates["version"] = interview.Version + 1
	res := tx.Model(&models.Interview{}).
		Where("id = ? AND version = ?", interview.ID, interview.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict(op, interview.ID, "interview was modified concurrently, re-read and retry")
	}
	return nil
}

func combineSchedule(date time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return time.Time{}, errors.New("interview time must be HH:MM")
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
