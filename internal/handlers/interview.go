package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/services"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewService  *services.InterviewService
	completionService *services.CompletionService
	hub               *ws.Hub
}

func NewInterviewHandler(interviewService *services.InterviewService, completionService *services.CompletionService, hub *ws.Hub) *InterviewHandler {
	return &InterviewHandler{
		interviewService:  interviewService,
		completionService: completionService,
		hub:               hub,
	}
}

type CreateInterviewRequest struct {
	CandidateEmail  string                     `json:"candidate_email" binding:"required,email" example:"candidate@example.com"`
	CandidateName   string                     `json:"candidate_name" example:"John Smith"`
	TemplateID      *uint                      `json:"template_id,omitempty" example:"1"`
	InterviewDate   string                     `json:"interview_date" binding:"required" example:"2026-09-15"`
	InterviewTime   string                     `json:"interview_time" binding:"required" example:"14:30"`
	DurationMinutes int                        `json:"duration_minutes" example:"45"`
	Notes           string                     `json:"notes,omitempty"`
	AISession       *services.AISessionOptions `json:"ai_session,omitempty"`
}

type ReasonRequest struct {
	Reason string `json:"reason" example:"candidate requested a break"`
}

// CreateInterview godoc
// @Summary      Schedule an interview
// @Description  Create an interview; the candidate is resolved by email or provisioned with a one-time password
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateInterviewRequest true "Interview data"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews [post]
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.InterviewDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "interview_date must be YYYY-MM-DD"})
		return
	}

	result, err := h.interviewService.Create(actorFrom(c), services.CreateInterviewInput{
		CandidateEmail:  req.CandidateEmail,
		CandidateName:   req.CandidateName,
		TemplateID:      req.TemplateID,
		InterviewDate:   date,
		InterviewTime:   req.InterviewTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		AISession:       req.AISession,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"interview": result.Interview}
	if result.CandidateOneTimePassword != "" {
		resp["candidate_one_time_password"] = result.CandidateOneTimePassword
	}
	c.JSON(http.StatusCreated, resp)
}

// ListInterviews godoc
// @Summary      List interviews
// @Description  List interviews visible to the caller (own for candidates/recruiters, all for admins)
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.InterviewSummary
// @Router       /api/v1/interviews [get]
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	interviews, err := h.interviewService.List(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interviews)
}

// GetInterview godoc
// @Summary      Get an interview
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} models.Interview
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Get(actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

// StartInterview godoc
// @Summary      Start or re-enter an interview
// @Description  Legal from scheduled or paused; start time is recorded on first entry only
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} models.Interview
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/start [post]
func (h *InterviewHandler) StartInterview(c *gin.Context) {
	h.transition(c, h.interviewService.Start)
}

// PauseInterview godoc
// @Summary      Pause an in-progress interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        request body ReasonRequest false "Pause reason"
// @Success      200 {object} models.Interview
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/pause [post]
func (h *InterviewHandler) PauseInterview(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	interview, err := h.interviewService.Pause(actorFrom(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.Event{Type: ws.EventStatusChanged, Data: interview})
	c.JSON(http.StatusOK, interview)
}

// ResumeInterview godoc
// @Summary      Resume a paused interview
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} models.Interview
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/resume [post]
func (h *InterviewHandler) ResumeInterview(c *gin.Context) {
	h.transition(c, h.interviewService.Resume)
}

// EndInterview godoc
// @Summary      Complete an interview
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} models.Interview
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/end [post]
func (h *InterviewHandler) EndInterview(c *gin.Context) {
	h.transition(c, h.interviewService.End)
}

// CancelInterview godoc
// @Summary      Cancel an interview
// @Description  Legal from any non-terminal state; recruiters and admins only
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        request body ReasonRequest false "Cancellation reason"
// @Success      200 {object} models.Interview
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/cancel [post]
func (h *InterviewHandler) CancelInterview(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	interview, err := h.interviewService.Cancel(actorFrom(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.Event{Type: ws.EventStatusChanged, Data: interview})
	c.JSON(http.StatusOK, interview)
}

// DeleteInterview godoc
// @Summary      Delete an interview
// @Description  Administrative removal; hard or soft depending on server policy
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/interviews/{id} [delete]
func (h *InterviewHandler) DeleteInterview(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	if err := h.interviewService.Delete(actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "interview deleted"})
}

// GetCompletionStats godoc
// @Summary      Get completion statistics
// @Description  Progress snapshot derived from the template size and submitted answers
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} services.CompletionStats
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/stats [get]
func (h *InterviewHandler) GetCompletionStats(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	stats, err := h.completionService.Stats(actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *InterviewHandler) transition(c *gin.Context, fn func(actor authz.Actor, id uint) (*models.Interview, error)) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	interview, err := fn(actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.Event{Type: ws.EventStatusChanged, Data: interview})
	c.JSON(http.StatusOK, interview)
}

func interviewID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interview id"})
		return 0, false
	}
	return uint(id), true
}
