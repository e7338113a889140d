package services

import (
	"testing"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAnswer(t *testing.T) {
	env := newTestEnv(t)

	t.Run("rejected before the interview starts", func(t *testing.T) {
		interview := env.createInterview(t)

		_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
			QuestionID: 1, QuestionText: "Q1", AnswerText: "too early",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))

		var count int64
		env.db.Model(&models.InterviewAnswer{}).Where("interview_id = ?", interview.ID).Count(&count)
		assert.Zero(t, count, "failed submit must not touch the collection")
	})

	t.Run("appends in submission order while in progress", func(t *testing.T) {
		interview := env.createInterview(t)
		env.startInterview(t, interview.ID)

		for i, text := range []string{"first", "second", "third"} {
			_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
				QuestionID: uint(i + 1), QuestionText: "Q", AnswerText: text,
			})
			require.NoError(t, err)
		}

		sheet, err := env.answers.List(env.recruiter, interview.ID)
		require.NoError(t, err)
		require.Len(t, sheet.Answers, 3)
		assert.Equal(t, "first", sheet.Answers[0].AnswerText)
		assert.Equal(t, "third", sheet.Answers[2].AnswerText)
		assert.Nil(t, sheet.Answers[0].Score, "score starts null")
	})

	t.Run("duplicate question ids are both accepted", func(t *testing.T) {
		interview := env.createInterview(t)
		env.startInterview(t, interview.ID)

		for _, text := range []string{"take one", "take two"} {
			_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
				QuestionID: 7, QuestionText: "Q7", AnswerText: text,
			})
			require.NoError(t, err)
		}

		var count int64
		env.db.Model(&models.InterviewAnswer{}).
			Where("interview_id = ? AND question_id = ?", interview.ID, 7).
			Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("rejected after cancellation", func(t *testing.T) {
		interview := env.createInterview(t)
		_, err := env.interviews.Cancel(env.recruiter, interview.ID, "")
		require.NoError(t, err)

		_, err = env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
			QuestionID: 1, QuestionText: "Q", AnswerText: "A",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})
}

func TestUpdateAnswer(t *testing.T) {
	env := newTestEnv(t)

	t.Run("targets the most recent answer for the question", func(t *testing.T) {
		interview := env.createInterview(t)
		env.startInterview(t, interview.ID)

		for _, text := range []string{"draft", "final"} {
			_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
				QuestionID: 1, QuestionText: "Q1", AnswerText: text,
			})
			require.NoError(t, err)
		}

		updated, err := env.answers.UpdateText(env.candidate, interview.ID, 1, "revised final", nil)
		require.NoError(t, err)
		assert.Equal(t, "revised final", updated.AnswerText)

		sheet, err := env.answers.List(env.recruiter, interview.ID)
		require.NoError(t, err)
		require.Len(t, sheet.Answers, 2)
		assert.Equal(t, "draft", sheet.Answers[0].AnswerText, "earlier duplicate untouched")
	})

	t.Run("allowed briefly after completion", func(t *testing.T) {
		interview := env.createInterview(t)
		env.startInterview(t, interview.ID)
		_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
			QuestionID: 1, QuestionText: "Q1", AnswerText: "original",
		})
		require.NoError(t, err)
		_, err = env.interviews.End(env.recruiter, interview.ID)
		require.NoError(t, err)

		updated, err := env.answers.UpdateText(env.candidate, interview.ID, 1, "post-hoc clarification", nil)
		require.NoError(t, err)
		assert.Equal(t, "post-hoc clarification", updated.AnswerText)
	})

	t.Run("unknown question id", func(t *testing.T) {
		interview := env.createInterview(t)
		env.startInterview(t, interview.ID)

		_, err := env.answers.UpdateText(env.candidate, interview.ID, 99, "nothing to update", nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestScoreAnswer(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createInterview(t)
	env.startInterview(t, interview.ID)
	_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
		QuestionID: 1, QuestionText: "Q1", AnswerText: "A1",
	})
	require.NoError(t, err)

	t.Run("out of range score", func(t *testing.T) {
		_, err := env.answers.Score(env.recruiter, interview.ID, 1, 10.5, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		_, err = env.answers.Score(env.recruiter, interview.ID, 1, -0.1, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("candidate may not score", func(t *testing.T) {
		_, err := env.answers.Score(env.candidate, interview.ID, 1, 5, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})

	t.Run("valid score persists exactly", func(t *testing.T) {
		scored, err := env.answers.Score(env.recruiter, interview.ID, 1, 7.5, "solid reasoning")
		require.NoError(t, err)
		require.NotNil(t, scored.Score)
		assert.Equal(t, 7.5, *scored.Score)
		assert.Equal(t, "solid reasoning", scored.RecruiterNotes)
	})

	t.Run("scoring works after completion", func(t *testing.T) {
		_, err := env.interviews.End(env.recruiter, interview.ID)
		require.NoError(t, err)

		scored, err := env.answers.Score(env.admin, interview.ID, 1, 9, "")
		require.NoError(t, err)
		require.NotNil(t, scored.Score)
		assert.Equal(t, float64(9), *scored.Score)
	})
}

func TestSubmitLosesToConcurrentTransition(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createInterview(t)
	env.startInterview(t, interview.ID)

	// Two callers race: one reads the interview while it is in progress,
	// the other completes it first. The submit must lose.
	stale, err := env.answers.loadInterview("test", interview.ID)
	require.NoError(t, err)

	_, err = env.interviews.End(env.recruiter, interview.ID)
	require.NoError(t, err)

	_, err = env.answers.append("test", stale, SubmitAnswerInput{
		QuestionID: 1, QuestionText: "Q", AnswerText: "late",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	var count int64
	env.db.Model(&models.InterviewAnswer{}).Where("interview_id = ?", interview.ID).Count(&count)
	assert.Zero(t, count, "losing write must not append")
}

func TestLedgerWritesBumpVersion(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createInterview(t)
	started := env.startInterview(t, interview.ID)

	_, err := env.answers.Submit(env.candidate, interview.ID, SubmitAnswerInput{
		QuestionID: 1, QuestionText: "Q", AnswerText: "A",
	})
	require.NoError(t, err)

	var afterSubmit models.Interview
	require.NoError(t, env.db.First(&afterSubmit, interview.ID).Error)
	assert.Greater(t, afterSubmit.Version, started.Version)

	_, err = env.answers.Score(env.recruiter, interview.ID, 1, 6, "")
	require.NoError(t, err)

	var afterScore models.Interview
	require.NoError(t, env.db.First(&afterScore, interview.ID).Error)
	assert.Greater(t, afterScore.Version, afterSubmit.Version)
}

func TestAnswerSheetSummaries(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createInterview(t)
	env.startInterview(t, interview.ID)

	sheet, err := env.answers.List(env.candidate, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carl Candidate", sheet.Candidate.FullName)
	assert.Equal(t, "Rita Recruiter", sheet.Recruiter.FullName)
	assert.Equal(t, models.InterviewStatusInProgress, sheet.Status)
}

func TestAnswerSheetMissingParty(t *testing.T) {
	env := newTestEnv(t)
	interview := env.createInterview(t)

	require.NoError(t, env.db.Delete(&models.User{}, interview.CandidateID).Error)

	_, err := env.answers.List(env.recruiter, interview.ID)
	require.Error(t, err, "a dangling party reference must not yield an empty summary")
}
