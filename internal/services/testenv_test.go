package services

import (
	"testing"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/config"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/testhelpers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	auth       *AuthService
	interviews *InterviewService
	answers    *AnswerService
	sessions   *AISessionService
	completion *CompletionService
	templates  *TemplateService

	recruiter authz.Actor
	candidate authz.Actor
	admin     authz.Actor
}

func testConfig() *config.Config {
	return &config.Config{
		Interview: config.InterviewConfig{HardDelete: false},
		Session: config.SessionConfig{
			DefaultPersonality: "professional",
			DefaultStyle:       "structured",
			DefaultDifficulty:  "medium",
			DefaultDurationMin: 30,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	auth := NewAuthService(db, "test-secret", 1)
	cfg := testConfig()

	env := &testEnv{
		db:         db,
		auth:       auth,
		interviews: NewInterviewService(db, auth, cfg),
		answers:    NewAnswerService(db),
		sessions:   NewAISessionService(db),
		completion: NewCompletionService(db),
		templates:  NewTemplateService(db),
	}

	env.recruiter = env.seedUser(t, "recruiter@example.com", "Rita Recruiter", models.RoleRecruiter)
	env.candidate = env.seedUser(t, "candidate@example.com", "Carl Candidate", models.RoleCandidate)
	env.admin = env.seedUser(t, "admin@example.com", "Ada Admin", models.RoleAdmin)
	return env
}

func (e *testEnv) seedUser(t *testing.T, email, name, role string) authz.Actor {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FullName:     name,
		Role:         role,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return authz.Actor{ID: user.ID, Role: role}
}

// scheduleInput returns a valid creation input two days out.
func (e *testEnv) scheduleInput() CreateInterviewInput {
	return CreateInterviewInput{
		CandidateEmail: "candidate@example.com",
		CandidateName:  "Carl Candidate",
		InterviewDate:  time.Now().Add(48 * time.Hour),
		InterviewTime:  "10:00",
	}
}

func (e *testEnv) createInterview(t *testing.T) *models.Interview {
	t.Helper()
	result, err := e.interviews.Create(e.recruiter, e.scheduleInput())
	require.NoError(t, err)
	return result.Interview
}

func (e *testEnv) createAIInterview(t *testing.T) *models.Interview {
	t.Helper()
	input := e.scheduleInput()
	input.AISession = &AISessionOptions{Difficulty: "hard"}
	result, err := e.interviews.Create(e.recruiter, input)
	require.NoError(t, err)
	return result.Interview
}

func (e *testEnv) startInterview(t *testing.T, id uint) *models.Interview {
	t.Helper()
	interview, err := e.interviews.Start(e.recruiter, id)
	require.NoError(t, err)
	return interview
}
