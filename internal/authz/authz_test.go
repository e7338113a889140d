package authz

import (
	"testing"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	interview := &models.Interview{CandidateID: 10, RecruiterID: 20}
	interview.ID = 1

	candidate := Actor{ID: 10, Role: models.RoleCandidate}
	recruiter := Actor{ID: 20, Role: models.RoleRecruiter}
	stranger := Actor{ID: 99, Role: models.RoleRecruiter}
	admin := Actor{ID: 1, Role: models.RoleAdmin}

	cases := []struct {
		name  string
		actor Actor
		op    Operation
		iv    *models.Interview
		allow bool
	}{
		{"candidate views own interview", candidate, OpViewInterview, interview, true},
		{"candidate starts own interview", candidate, OpStartInterview, interview, true},
		{"candidate submits answer", candidate, OpSubmitAnswer, interview, true},
		{"candidate cannot cancel", candidate, OpCancelInterview, interview, false},
		{"candidate cannot create", candidate, OpCreateInterview, nil, false},
		{"candidate cannot delete", candidate, OpDeleteInterview, interview, false},
		{"candidate cannot score", candidate, OpScoreAnswer, interview, false},
		{"candidate cannot update insights", candidate, OpUpdateInsights, interview, false},
		{"candidate cannot finalize", candidate, OpFinalizeAnalysis, interview, false},

		{"recruiter creates", recruiter, OpCreateInterview, nil, true},
		{"recruiter cancels own", recruiter, OpCancelInterview, interview, true},
		{"recruiter scores own", recruiter, OpScoreAnswer, interview, true},
		{"recruiter finalizes own", recruiter, OpFinalizeAnalysis, interview, true},
		{"recruiter cannot submit answers", recruiter, OpSubmitAnswer, interview, false},

		{"foreign recruiter cannot view", stranger, OpViewInterview, interview, false},
		{"foreign recruiter cannot cancel", stranger, OpCancelInterview, interview, false},
		{"foreign recruiter can still create", stranger, OpCreateInterview, nil, true},

		{"admin touches any record", admin, OpDeleteInterview, interview, true},
		{"admin finalizes any record", admin, OpFinalizeAnalysis, interview, true},

		{"unknown role denied", Actor{ID: 5, Role: "auditor"}, OpViewInterview, interview, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.op, tc.iv)
			if tc.allow {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
			}
		})
	}
}

func TestOwnScopedDenialNamesTheInterview(t *testing.T) {
	interview := &models.Interview{CandidateID: 10, RecruiterID: 20}
	interview.ID = 42

	err := Authorize(Actor{ID: 11, Role: models.RoleCandidate}, OpViewInterview, interview)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "42")
}
