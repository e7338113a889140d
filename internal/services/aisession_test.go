package services

import (
	"testing"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldPause(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("adds the elapsed interval", func(t *testing.T) {
		got := FoldPause(30, base, base.Add(90*time.Second))
		assert.Equal(t, 120, got)
	})

	t.Run("accumulates across cycles", func(t *testing.T) {
		total := FoldPause(0, base, base.Add(10*time.Second))
		total = FoldPause(total, base.Add(time.Minute), base.Add(time.Minute+25*time.Second))
		assert.Equal(t, 35, total)
	})

	t.Run("clock anomaly folds as zero", func(t *testing.T) {
		got := FoldPause(30, base, base.Add(-time.Minute))
		assert.Equal(t, 30, got)
	})
}

func TestSessionConfigMerging(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)

	session, err := env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, "hard", session.Difficulty, "caller override wins")
	assert.Equal(t, "professional", session.Personality, "unset fields fall back to policy defaults")
	assert.Equal(t, "structured", session.Style)
	assert.Equal(t, 30, session.EstimatedDurationMin)
}

func TestSessionTiming(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)

	env.startInterview(t, interview.ID)

	session, err := env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)
	require.NotNil(t, session.StartTime)
	assert.Nil(t, session.PausedAt)

	_, err = env.interviews.Pause(env.recruiter, interview.ID, "")
	require.NoError(t, err)

	session, err = env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)
	require.NotNil(t, session.PausedAt)

	_, err = env.interviews.Resume(env.recruiter, interview.ID)
	require.NoError(t, err)

	session, err = env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)
	require.NotNil(t, session.ResumedAt)
	assert.GreaterOrEqual(t, session.TotalPauseDurationSec, 0)

	_, err = env.interviews.End(env.recruiter, interview.ID)
	require.NoError(t, err)

	session, err = env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)
	require.NotNil(t, session.EndTime)
	assert.Equal(t, session.TotalDurationSec-session.TotalPauseDurationSec, session.ActiveDurationSec)
	assert.LessOrEqual(t, session.ActiveDurationSec, session.TotalDurationSec)
}

func TestEndWhilePausedFoldsOutstandingPause(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)
	env.startInterview(t, interview.ID)

	_, err := env.interviews.Pause(env.recruiter, interview.ID, "")
	require.NoError(t, err)

	_, err = env.interviews.End(env.recruiter, interview.ID)
	require.NoError(t, err)

	session, err := env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, session.TotalDurationSec-session.TotalPauseDurationSec, session.ActiveDurationSec)
}

func TestTranscript(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)
	env.startInterview(t, interview.ID)

	t.Run("entries keep insertion order", func(t *testing.T) {
		now := time.Now()
		inputs := []TranscriptInput{
			{EntryType: models.TranscriptTypeAIMessage, Content: "welcome", Timestamp: now},
			// Out-of-order timestamp: accepted, not reordered.
			{EntryType: models.TranscriptTypeAIQuestion, Content: "tell me about a project", Timestamp: now.Add(-time.Minute)},
			{EntryType: models.TranscriptTypeCandidateAnswer, Content: "sure", Timestamp: now.Add(time.Second)},
		}
		for _, input := range inputs {
			_, err := env.sessions.AppendTranscript(env.recruiter, interview.ID, input)
			require.NoError(t, err)
		}

		session, err := env.sessions.Get(env.recruiter, interview.ID)
		require.NoError(t, err)
		require.Len(t, session.Transcript, 3)
		assert.Equal(t, "welcome", session.Transcript[0].Content)
		assert.Equal(t, "tell me about a project", session.Transcript[1].Content)
		assert.Equal(t, 2, session.Transcript[1].Seq)
	})

	t.Run("ai questions advance progress counters", func(t *testing.T) {
		session, err := env.sessions.Get(env.recruiter, interview.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, session.TotalQuestionsAsked)
		assert.Equal(t, 1, session.CurrentQuestionIndex)
	})

	t.Run("invalid entry type", func(t *testing.T) {
		_, err := env.sessions.AppendTranscript(env.recruiter, interview.ID, TranscriptInput{
			EntryType: "interpretive_dance", Content: "?",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("closed after completion", func(t *testing.T) {
		_, err := env.interviews.End(env.recruiter, interview.ID)
		require.NoError(t, err)

		_, err = env.sessions.AppendTranscript(env.recruiter, interview.ID, TranscriptInput{
			EntryType: models.TranscriptTypeSystemEvent, Content: "late event",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})
}

func TestTranscriptSeqUnique(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)
	env.startInterview(t, interview.ID)

	_, err := env.sessions.AppendTranscript(env.recruiter, interview.ID, TranscriptInput{
		EntryType: models.TranscriptTypeAIMessage, Content: "welcome",
	})
	require.NoError(t, err)

	session, err := env.sessions.Get(env.recruiter, interview.ID)
	require.NoError(t, err)

	// The schema itself rejects a duplicate sequence number, so two
	// racing appends cannot both mint seq 1.
	dup := models.TranscriptEntry{
		SessionID: session.ID,
		Seq:       1,
		EntryType: models.TranscriptTypeSystemEvent,
		Content:   "impostor",
		Timestamp: time.Now(),
	}
	require.Error(t, env.db.Create(&dup).Error)
}

func TestInsights(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)
	env.startInterview(t, interview.ID)

	sentiment := 0.4
	style := "direct"
	session, err := env.sessions.UpdateInsights(env.recruiter, interview.ID, InsightsInput{
		KeywordFrequency:   models.KeywordCounts{"kubernetes": 3, "testing": 5},
		SentimentScore:     &sentiment,
		CommunicationStyle: &style,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.4, session.SentimentScore)
	assert.Equal(t, "direct", session.CommunicationStyle)
	assert.EqualValues(t, 3, session.KeywordFrequency["kubernetes"])

	t.Run("sentiment out of range", func(t *testing.T) {
		bad := 1.5
		_, err := env.sessions.UpdateInsights(env.recruiter, interview.ID, InsightsInput{SentimentScore: &bad})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		depth := 6.5
		session, err := env.sessions.UpdateInsights(env.recruiter, interview.ID, InsightsInput{TechnicalDepthScore: &depth})
		require.NoError(t, err)
		assert.Equal(t, 6.5, session.TechnicalDepthScore)
		assert.Equal(t, "direct", session.CommunicationStyle)
	})
}

func TestFinalize(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createAIInterview(t)
	env.startInterview(t, interview.ID)
	_, err := env.interviews.End(env.recruiter, interview.ID)
	require.NoError(t, err)

	t.Run("overall score bound", func(t *testing.T) {
		_, err := env.sessions.Finalize(env.recruiter, interview.ID, FinalAnalysisInput{OverallScore: 11})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("candidate may not finalize", func(t *testing.T) {
		_, err := env.sessions.Finalize(env.candidate, interview.ID, FinalAnalysisInput{OverallScore: 5})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})

	t.Run("first write lands, second is rejected unchanged", func(t *testing.T) {
		session, err := env.sessions.Finalize(env.recruiter, interview.ID, FinalAnalysisInput{
			Strengths:        []string{"clear communication"},
			Weaknesses:       []string{"little distributed-systems depth"},
			OverallScore:     7.5,
			CompletionReason: models.CompletionReasonCompleted,
			Decision:         models.DecisionNextRound,
		})
		require.NoError(t, err)
		require.NotNil(t, session.FinalizedAt)
		require.NotNil(t, session.OverallScore)
		assert.Equal(t, 7.5, *session.OverallScore)

		_, err = env.sessions.Finalize(env.recruiter, interview.ID, FinalAnalysisInput{
			OverallScore: 1,
			Decision:     models.DecisionReject,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAlreadyFinalized, apperrors.KindOf(err))

		unchanged, err := env.sessions.Get(env.recruiter, interview.ID)
		require.NoError(t, err)
		require.NotNil(t, unchanged.OverallScore)
		assert.Equal(t, 7.5, *unchanged.OverallScore)
		assert.Equal(t, models.DecisionNextRound, unchanged.Decision)
		assert.Equal(t, []string{"clear communication"}, []string(unchanged.Strengths))
	})

	t.Run("invalid decision", func(t *testing.T) {
		other := env.createAIInterview(t)
		_, err := env.sessions.Finalize(env.recruiter, other.ID, FinalAnalysisInput{
			OverallScore: 5,
			Decision:     "flip_a_coin",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}

func TestSessionAbsentForStandardInterview(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createInterview(t)

	_, err := env.sessions.Get(env.recruiter, interview.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
