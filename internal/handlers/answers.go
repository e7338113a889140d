package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/services"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerService *services.AnswerService
	hub           *ws.Hub
}

func NewAnswerHandler(answerService *services.AnswerService, hub *ws.Hub) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, hub: hub}
}

type SubmitAnswerRequest struct {
	QuestionID      uint   `json:"question_id" binding:"required" example:"3"`
	QuestionText    string `json:"question_text" binding:"required" example:"Describe a hard bug you fixed."`
	AnswerText      string `json:"answer_text" binding:"required"`
	DurationSeconds *int   `json:"duration_seconds,omitempty" example:"120"`
}

type UpdateAnswerRequest struct {
	AnswerText      string `json:"answer_text" binding:"required"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
}

type ScoreAnswerRequest struct {
	Score          float64 `json:"score" binding:"min=0,max=10" example:"7.5"`
	RecruiterNotes string  `json:"recruiter_notes,omitempty"`
}

// SubmitAnswer godoc
// @Summary      Submit an answer
// @Description  Append an answer; only legal while the interview is in progress
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        request body SubmitAnswerRequest true "Answer data"
// @Success      201 {object} models.InterviewAnswer
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/answers [post]
func (h *AnswerHandler) SubmitAnswer(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.answerService.Submit(actorFrom(c), id, services.SubmitAnswerInput{
		QuestionID:      req.QuestionID,
		QuestionText:    req.QuestionText,
		AnswerText:      req.AnswerText,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.Event{Type: ws.EventAnswer, Data: answer})
	c.JSON(http.StatusCreated, answer)
}

// UpdateAnswer godoc
// @Summary      Update an answer's text
// @Description  Edits the most recent answer for the question; allowed while in progress or shortly after completion
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        questionId path int true "Question ID"
// @Param        request body UpdateAnswerRequest true "New answer text"
// @Success      200 {object} models.InterviewAnswer
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/answers/{questionId} [put]
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "questionId", "invalid question id")
	if !ok {
		return
	}

	var req UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.answerService.UpdateText(actorFrom(c), id, questionID, req.AnswerText, req.DurationSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// ScoreAnswer godoc
// @Summary      Score an answer
// @Description  Evaluator-only; score must be within [0,10]
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        questionId path int true "Question ID"
// @Param        request body ScoreAnswerRequest true "Score"
// @Success      200 {object} models.InterviewAnswer
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/answers/{questionId}/score [post]
func (h *AnswerHandler) ScoreAnswer(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "questionId", "invalid question id")
	if !ok {
		return
	}

	var req ScoreAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.answerService.Score(actorFrom(c), id, questionID, req.Score, req.RecruiterNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// GetAnswers godoc
// @Summary      List answers
// @Description  Ordered answer sheet with candidate and recruiter summaries
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} services.AnswerSheet
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/answers [get]
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	sheet, err := h.answerService.List(actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func pathID(c *gin.Context, name, errMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMsg})
		return 0, false
	}
	return uint(id), true
}
