package models

import "time"

const (
	TranscriptTypeAIMessage       = "ai_message"
	TranscriptTypeAIQuestion      = "ai_question"
	TranscriptTypeAIFollowup      = "ai_followup"
	TranscriptTypeCandidateAnswer = "candidate_answer"
	TranscriptTypeSystemEvent     = "system_event"
)

const (
	CompletionReasonCompleted        = "completed"
	CompletionReasonTimeout          = "timeout"
	CompletionReasonCandidateEnded   = "candidate_ended"
	CompletionReasonTechnicalIssue   = "technical_issue"
	CompletionReasonInterviewerEnded = "interviewer_ended"
)

const (
	DecisionHire      = "hire"
	DecisionReject    = "reject"
	DecisionMaybe     = "maybe"
	DecisionNextRound = "next_round"
)

// AISession holds the automated-interview sub-state nested inside an
// interview: pause/resume accounting, the conversation transcript,
// advisory realtime insights and the write-once final analysis.
type AISession struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	InterviewID uint `gorm:"not null;uniqueIndex" json:"interview_id"`

	// Timing. Durations are seconds; activeDuration = totalDuration -
	// totalPauseDuration, folded incrementally across pause/resume cycles.
	StartTime             *time.Time `json:"start_time,omitempty"`
	EndTime               *time.Time `json:"end_time,omitempty"`
	PausedAt              *time.Time `json:"paused_at,omitempty"`
	ResumedAt             *time.Time `json:"resumed_at,omitempty"`
	TotalDurationSec      int        `gorm:"not null;default:0" json:"total_duration_sec"`
	ActiveDurationSec     int        `gorm:"not null;default:0" json:"active_duration_sec"`
	TotalPauseDurationSec int        `gorm:"not null;default:0" json:"total_pause_duration_sec"`

	// Configuration, written once when the session is created.
	Personality          string `gorm:"size:50" json:"personality"`
	Style                string `gorm:"size:50" json:"style"`
	Difficulty           string `gorm:"size:20" json:"difficulty"`
	EstimatedDurationMin int    `gorm:"not null;default:30" json:"estimated_duration_min"`

	CurrentQuestionIndex int `gorm:"not null;default:0" json:"current_question_index"`
	TotalQuestionsAsked  int `gorm:"not null;default:0" json:"total_questions_asked"`

	// Realtime insights: advisory, mutable throughout the session and
	// never used to gate lifecycle transitions.
	KeywordFrequency       KeywordCounts `gorm:"type:text" json:"keyword_frequency,omitempty"`
	SentimentScore         float64       `gorm:"not null;default:0" json:"sentiment_score"`
	CommunicationStyle     string        `gorm:"size:50" json:"communication_style,omitempty"`
	TechnicalDepthScore    float64       `gorm:"not null;default:0" json:"technical_depth_score"`
	ProblemSolvingApproach string        `gorm:"size:50" json:"problem_solving_approach,omitempty"`

	// Final analysis, written at most once. FinalizedAt guards rewrites.
	FinalizedAt         *time.Time `json:"finalized_at,omitempty"`
	Strengths           StringList `gorm:"type:text" json:"strengths,omitempty"`
	Weaknesses          StringList `gorm:"type:text" json:"weaknesses,omitempty"`
	Recommendations     StringList `gorm:"type:text" json:"recommendations,omitempty"`
	OverallScore        *float64   `json:"overall_score,omitempty"`
	TechnicalScore      *float64   `json:"technical_score,omitempty"`
	CommunicationScore  *float64   `json:"communication_score,omitempty"`
	ProblemSolvingScore *float64   `json:"problem_solving_score,omitempty"`
	CulturalScore       *float64   `json:"cultural_score,omitempty"`
	CompletionReason    string     `gorm:"size:30" json:"completion_reason,omitempty"`
	Decision            string     `gorm:"size:20" json:"decision,omitempty"`
	DecisionConfidence  *float64   `json:"decision_confidence,omitempty"`
	DecisionReasoning   string     `gorm:"type:text" json:"decision_reasoning,omitempty"`

	Transcript []TranscriptEntry `gorm:"foreignKey:SessionID" json:"transcript,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TranscriptEntry is one turn of the automated conversation. Seq is the
// insertion order; entries arriving with out-of-order timestamps are
// accepted but never reordered.
type TranscriptEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  uint      `gorm:"not null;uniqueIndex:idx_transcript_order" json:"session_id"`
	Seq        int       `gorm:"not null;uniqueIndex:idx_transcript_order" json:"seq"`
	EntryType  string    `gorm:"size:20;not null" json:"entry_type"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	QuestionID *uint     `json:"question_id,omitempty"`
	Metadata   Metadata  `gorm:"type:text" json:"metadata,omitempty"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
}

func ValidTranscriptType(t string) bool {
	switch t {
	case TranscriptTypeAIMessage, TranscriptTypeAIQuestion, TranscriptTypeAIFollowup,
		TranscriptTypeCandidateAnswer, TranscriptTypeSystemEvent:
		return true
	}
	return false
}

func ValidCompletionReason(r string) bool {
	switch r {
	case CompletionReasonCompleted, CompletionReasonTimeout, CompletionReasonCandidateEnded,
		CompletionReasonTechnicalIssue, CompletionReasonInterviewerEnded:
		return true
	}
	return false
}

func ValidDecision(d string) bool {
	switch d {
	case DecisionHire, DecisionReject, DecisionMaybe, DecisionNextRound:
		return true
	}
	return false
}
