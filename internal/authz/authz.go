// Package authz is the single capability table consulted by every
// interview operation. Roles map to a scope per operation: denied,
// allowed on interviews the actor owns, or allowed on any interview.
package authz

import (
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"
)

type Operation string

const (
	OpCreateInterview  Operation = "create_interview"
	OpViewInterview    Operation = "view_interview"
	OpStartInterview   Operation = "start_interview"
	OpPauseInterview   Operation = "pause_interview"
	OpResumeInterview  Operation = "resume_interview"
	OpEndInterview     Operation = "end_interview"
	OpCancelInterview  Operation = "cancel_interview"
	OpDeleteInterview  Operation = "delete_interview"
	OpSubmitAnswer     Operation = "submit_answer"
	OpUpdateAnswer     Operation = "update_answer"
	OpScoreAnswer      Operation = "score_answer"
	OpViewAnswers      Operation = "view_answers"
	OpViewStats        Operation = "view_stats"
	OpViewSession      Operation = "view_session"
	OpAppendTranscript Operation = "append_transcript"
	OpUpdateInsights   Operation = "update_insights"
	OpFinalizeAnalysis Operation = "finalize_analysis"
)

// Actor is the authenticated caller, as decoded from the JWT.
type Actor struct {
	ID   uint
	Role string
}

type scope int

const (
	denied scope = iota
	ownOnly
	anyRecord
)

var capabilities = map[string]map[Operation]scope{
	models.RoleCandidate: {
		OpViewInterview:    ownOnly,
		OpStartInterview:   ownOnly,
		OpPauseInterview:   ownOnly,
		OpResumeInterview:  ownOnly,
		OpEndInterview:     ownOnly,
		OpSubmitAnswer:     ownOnly,
		OpUpdateAnswer:     ownOnly,
		OpViewAnswers:      ownOnly,
		OpViewStats:        ownOnly,
		OpViewSession:      ownOnly,
		OpAppendTranscript: ownOnly,
	},
	models.RoleRecruiter: {
		OpCreateInterview:  ownOnly,
		OpViewInterview:    ownOnly,
		OpStartInterview:   ownOnly,
		OpPauseInterview:   ownOnly,
		OpResumeInterview:  ownOnly,
		OpEndInterview:     ownOnly,
		OpCancelInterview:  ownOnly,
		OpDeleteInterview:  ownOnly,
		OpScoreAnswer:      ownOnly,
		OpViewAnswers:      ownOnly,
		OpViewStats:        ownOnly,
		OpViewSession:      ownOnly,
		OpAppendTranscript: ownOnly,
		OpUpdateInsights:   ownOnly,
		OpFinalizeAnalysis: ownOnly,
	},
	models.RoleAdmin: {
		OpCreateInterview:  anyRecord,
		OpViewInterview:    anyRecord,
		OpStartInterview:   anyRecord,
		OpPauseInterview:   anyRecord,
		OpResumeInterview:  anyRecord,
		OpEndInterview:     anyRecord,
		OpCancelInterview:  anyRecord,
		OpDeleteInterview:  anyRecord,
		OpSubmitAnswer:     anyRecord,
		OpUpdateAnswer:     anyRecord,
		OpScoreAnswer:      anyRecord,
		OpViewAnswers:      anyRecord,
		OpViewStats:        anyRecord,
		OpViewSession:      anyRecord,
		OpAppendTranscript: anyRecord,
		OpUpdateInsights:   anyRecord,
		OpFinalizeAnalysis: anyRecord,
	},
}

// Authorize checks the capability table and, for own-scoped grants, the
// actor's ownership of the interview. It never mutates anything; a
// denial is a Forbidden error and the caller must not touch the record.
// iv may be nil for operations that precede the record (creation).
func Authorize(actor Actor, op Operation, iv *models.Interview) error {
	grants, ok := capabilities[actor.Role]
	if !ok {
		return apperrors.Forbidden(string(op), interviewID(iv), "unknown role")
	}
	switch grants[op] {
	case anyRecord:
		return nil
	case ownOnly:
		if iv == nil || owns(actor, iv) {
			return nil
		}
		return apperrors.Forbidden(string(op), iv.ID, "not a party to this interview")
	default:
		return apperrors.Forbidden(string(op), interviewID(iv), "operation not permitted for role "+actor.Role)
	}
}

func owns(actor Actor, iv *models.Interview) bool {
	switch actor.Role {
	case models.RoleCandidate:
		return iv.CandidateID == actor.ID
	case models.RoleRecruiter:
		return iv.RecruiterID == actor.ID
	}
	return false
}

func interviewID(iv *models.Interview) uint {
	if iv == nil {
		return 0
	}
	return iv.ID
}
