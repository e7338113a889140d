package services

import (
	"errors"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"gorm.io/gorm"
)

// AISessionService tracks the automated-interview sub-state: transcript
// appends, advisory realtime insights and the write-once final analysis.
// Pause/resume stamps are written by the lifecycle controller within the
// same transaction as the status change; the arithmetic lives here.
type AISessionService struct {
	db *gorm.DB
}

func NewAISessionService(db *gorm.DB) *AISessionService {
	return &AISessionService{db: db}
}

// FoldPause folds one completed pause interval into the accumulated
// pause total. The total only grows; a clock anomaly folds as zero.
func FoldPause(totalPauseSec int, pausedAt, resumedAt time.Time) int {
	d := int(resumedAt.Sub(pausedAt).Seconds())
	if d < 0 {
		d = 0
	}
	return totalPauseSec + d
}

func (s *AISessionService) Get(actor authz.Actor, interviewID uint) (*models.AISession, error) {
	const op = "get_session"

	interview, session, err := s.loadSession(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpViewSession, interview); err != nil {
		return nil, err
	}

	if err := s.db.Where("session_id = ?", session.ID).
		Order("seq ASC").
		Find(&session.Transcript).Error; err != nil {
		return nil, err
	}
	return session, nil
}

type TranscriptInput struct {
	EntryType  string
	Content    string
	QuestionID *uint
	Metadata   models.Metadata
	Timestamp  time.Time
}

// AppendTranscript appends one conversation turn. Entries are keyed by
// insertion sequence; an out-of-order timestamp is accepted as-is and
// never reordered. AI questions advance the progress counters.
func (s *AISessionService) AppendTranscript(actor authz.Actor, interviewID uint, input TranscriptInput) (*models.TranscriptEntry, error) {
	const op = "append_transcript"

	interview, session, err := s.loadSession(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpAppendTranscript, interview); err != nil {
		return nil, err
	}

	if !models.ValidTranscriptType(input.EntryType) {
		return nil, apperrors.Validation(op, "invalid transcript entry type: "+input.EntryType)
	}
	if input.Content == "" {
		return nil, apperrors.Validation(op, "transcript content is required")
	}
	if interview.Status != models.InterviewStatusInProgress && interview.Status != models.InterviewStatusPaused {
		return nil, apperrors.InvalidState(op, interviewID, interview.Status,
			"transcript is closed for this interview")
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var entry models.TranscriptEntry
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TranscriptEntry{}).
			Where("session_id = ?", session.ID).Count(&count).Error; err != nil {
			return err
		}

		entry = models.TranscriptEntry{
			SessionID:  session.ID,
			Seq:        int(count) + 1,
			EntryType:  input.EntryType,
			Content:    input.Content,
			QuestionID: input.QuestionID,
			Metadata:   input.Metadata,
			Timestamp:  timestamp,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if input.EntryType == models.TranscriptTypeAIQuestion {
			return tx.Model(&models.AISession{}).
				Where("id = ?", session.ID).
				Updates(map[string]interface{}{
					"current_question_index": gorm.Expr("current_question_index + 1"),
					"total_questions_asked":  gorm.Expr("total_questions_asked + 1"),
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// InsightsInput carries best-effort updates from the external analysis
// feed. Nil fields are left untouched; nothing here gates a transition.
type InsightsInput struct {
	KeywordFrequency       models.KeywordCounts
	SentimentScore         *float64
	CommunicationStyle     *string
	TechnicalDepthScore    *float64
	ProblemSolvingApproach *string
}

func (s *AISessionService) UpdateInsights(actor authz.Actor, interviewID uint, input InsightsInput) (*models.AISession, error) {
	const op = "update_insights"

	interview, session, err := s.loadSession(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpUpdateInsights, interview); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.KeywordFrequency != nil {
		updates["keyword_frequency"] = input.KeywordFrequency
	}
	if input.SentimentScore != nil {
		if *input.SentimentScore < -1 || *input.SentimentScore > 1 {
			return nil, apperrors.Validation(op, "sentiment score must be between -1 and 1")
		}
		updates["sentiment_score"] = *input.SentimentScore
	}
	if input.CommunicationStyle != nil {
		updates["communication_style"] = *input.CommunicationStyle
	}
	if input.TechnicalDepthScore != nil {
		updates["technical_depth_score"] = *input.TechnicalDepthScore
	}
	if input.ProblemSolvingApproach != nil {
		updates["problem_solving_approach"] = *input.ProblemSolvingApproach
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.AISession{}).
			Where("id = ?", session.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var refreshed models.AISession
	if err := s.db.First(&refreshed, session.ID).Error; err != nil {
		return nil, err
	}
	return &refreshed, nil
}

type FinalAnalysisInput struct {
	Strengths           []string
	Weaknesses          []string
	Recommendations     []string
	OverallScore        float64
	TechnicalScore      *float64
	CommunicationScore  *float64
	ProblemSolvingScore *float64
	CulturalScore       *float64
	CompletionReason    string
	Decision            string
	DecisionConfidence  *float64
	DecisionReasoning   string
}

// Finalize writes the final analysis exactly once. A second call fails
// and leaves the first call's data untouched.
func (s *AISessionService) Finalize(actor authz.Actor, interviewID uint, input FinalAnalysisInput) (*models.AISession, error) {
	const op = "finalize_analysis"

	interview, session, err := s.loadSession(op, interviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpFinalizeAnalysis, interview); err != nil {
		return nil, err
	}

	if session.FinalizedAt != nil {
		return nil, apperrors.AlreadyFinalized(op, interviewID)
	}
	if input.OverallScore < 0 || input.OverallScore > 10 {
		return nil, apperrors.Validation(op, "overall score must be between 0 and 10")
	}
	if input.CompletionReason != "" && !models.ValidCompletionReason(input.CompletionReason) {
		return nil, apperrors.Validation(op, "invalid completion reason: "+input.CompletionReason)
	}
	if input.Decision != "" && !models.ValidDecision(input.Decision) {
		return nil, apperrors.Validation(op, "invalid decision: "+input.Decision)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"finalized_at":       now,
		"strengths":          models.StringList(input.Strengths),
		"weaknesses":         models.StringList(input.Weaknesses),
		"recommendations":    models.StringList(input.Recommendations),
		"overall_score":      input.OverallScore,
		"completion_reason":  input.CompletionReason,
		"decision":           input.Decision,
		"decision_reasoning": input.DecisionReasoning,
	}
	if input.TechnicalScore != nil {
		updates["technical_score"] = *input.TechnicalScore
	}
	if input.CommunicationScore != nil {
		updates["communication_score"] = *input.CommunicationScore
	}
	if input.ProblemSolvingScore != nil {
		updates["problem_solving_score"] = *input.ProblemSolvingScore
	}
	if input.CulturalScore != nil {
		updates["cultural_score"] = *input.CulturalScore
	}
	if input.DecisionConfidence != nil {
		updates["decision_confidence"] = *input.DecisionConfidence
	}

	// Guard against a racing finalize: the write only lands if the
	// session is still unfinalized.
	res := s.db.Model(&models.AISession{}).
		Where("id = ? AND finalized_at IS NULL", session.ID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.AlreadyFinalized(op, interviewID)
	}

	var refreshed models.AISession
	if err := s.db.First(&refreshed, session.ID).Error; err != nil {
		return nil, err
	}
	return &refreshed, nil
}

func (s *AISessionService) loadSession(op string, interviewID uint) (*models.Interview, *models.AISession, error) {
	var interview models.Interview
	if err := s.db.First(&interview, interviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound(op, "interview not found")
		}
		return nil, nil, err
	}
	if interview.Status == models.InterviewStatusDeleted {
		return nil, nil, apperrors.NotFound(op, "interview not found")
	}

	var session models.AISession
	if err := s.db.Where("interview_id = ?", interviewID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound(op, "interview has no AI session")
		}
		return nil, nil, err
	}
	return &interview, &session, nil
}
