package handlers

import (
	"net/http"
	"time"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/services"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type AISessionHandler struct {
	sessionService *services.AISessionService
	hub            *ws.Hub
}

func NewAISessionHandler(sessionService *services.AISessionService, hub *ws.Hub) *AISessionHandler {
	return &AISessionHandler{sessionService: sessionService, hub: hub}
}

type TranscriptRequest struct {
	EntryType  string          `json:"entry_type" binding:"required" example:"ai_question"`
	Content    string          `json:"content" binding:"required"`
	QuestionID *uint           `json:"question_id,omitempty"`
	Metadata   models.Metadata `json:"metadata,omitempty"`
	Timestamp  *time.Time      `json:"timestamp,omitempty"`
}

type InsightsRequest struct {
	KeywordFrequency       models.KeywordCounts `json:"keyword_frequency,omitempty"`
	SentimentScore         *float64             `json:"sentiment_score,omitempty"`
	CommunicationStyle     *string              `json:"communication_style,omitempty"`
	TechnicalDepthScore    *float64             `json:"technical_depth_score,omitempty"`
	ProblemSolvingApproach *string              `json:"problem_solving_approach,omitempty"`
}

type FinalizeRequest struct {
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Recommendations     []string `json:"recommendations"`
	OverallScore        float64  `json:"overall_score"`
	TechnicalScore      *float64 `json:"technical_score,omitempty"`
	CommunicationScore  *float64 `json:"communication_score,omitempty"`
	ProblemSolvingScore *float64 `json:"problem_solving_score,omitempty"`
	CulturalScore       *float64 `json:"cultural_score,omitempty"`
	CompletionReason    string   `json:"completion_reason,omitempty"`
	Decision            string   `json:"decision,omitempty"`
	DecisionConfidence  *float64 `json:"decision_confidence,omitempty"`
	DecisionReasoning   string   `json:"decision_reasoning,omitempty"`
}

// GetSession godoc
// @Summary      Get the AI session
// @Description  Session timing, insights, analysis and full transcript
// @Tags         ai-session
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Success      200 {object} models.AISession
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/session [get]
func (h *AISessionHandler) GetSession(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// AppendTranscript godoc
// @Summary      Append a transcript entry
// @Description  Append-only; entries keep insertion order even when timestamps arrive out of order
// @Tags         ai-session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        request body TranscriptRequest true "Transcript entry"
// @Success      201 {object} models.TranscriptEntry
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/session/transcript [post]
func (h *AISessionHandler) AppendTranscript(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var req TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	input := services.TranscriptInput{
		EntryType:  req.EntryType,
		Content:    req.Content,
		QuestionID: req.QuestionID,
		Metadata:   req.Metadata,
	}
	if req.Timestamp != nil {
		input.Timestamp = *req.Timestamp
	}

	entry, err := h.sessionService.AppendTranscript(actorFrom(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.Event{Type: ws.EventTranscript, Data: entry})
	c.JSON(http.StatusCreated, entry)
}

// UpdateInsights godoc
// @Summary      Update realtime insights
// @Description  Best-effort advisory data from the analysis feed; never gates transitions
// @Tags         ai-session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        request body InsightsRequest true "Insight fields to update"
// @Success      200 {object} models.AISession
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/session/insights [put]
func (h *AISessionHandler) UpdateInsights(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var req InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.UpdateInsights(actorFrom(c), id, services.InsightsInput{
		KeywordFrequency:       req.KeywordFrequency,
		SentimentScore:         req.SentimentScore,
		CommunicationStyle:     req.CommunicationStyle,
		TechnicalDepthScore:    req.TechnicalDepthScore,
		ProblemSolvingApproach: req.ProblemSolvingApproach,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// FinalizeAnalysis godoc
// @Summary      Write the final analysis
// @Description  Write-once; a second call fails and leaves the first analysis intact
// @Tags         ai-session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Interview ID"
// @Param        request body FinalizeRequest true "Final analysis"
// @Success      200 {object} models.AISession
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/interviews/{id}/session/finalize [post]
func (h *AISessionHandler) FinalizeAnalysis(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Finalize(actorFrom(c), id, services.FinalAnalysisInput{
		Strengths:           req.Strengths,
		Weaknesses:          req.Weaknesses,
		Recommendations:     req.Recommendations,
		OverallScore:        req.OverallScore,
		TechnicalScore:      req.TechnicalScore,
		CommunicationScore:  req.CommunicationScore,
		ProblemSolvingScore: req.ProblemSolvingScore,
		CulturalScore:       req.CulturalScore,
		CompletionReason:    req.CompletionReason,
		Decision:            req.Decision,
		DecisionConfidence:  req.DecisionConfidence,
		DecisionReasoning:   req.DecisionReasoning,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
