package handlers

import (
	"net/http"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type CreateTemplateRequest struct {
	Title       string                           `json:"title" binding:"required" example:"Backend engineer screen"`
	Description string                           `json:"description,omitempty"`
	Questions   []services.TemplateQuestionInput `json:"questions" binding:"required"`
}

// CreateTemplate godoc
// @Summary      Create a question template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTemplateRequest true "Template data"
// @Success      201 {object} models.InterviewTemplate
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	template, err := h.templateService.Create(actorFrom(c), services.CreateTemplateInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GetTemplate godoc
// @Summary      Get a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Template ID"
// @Success      200 {object} models.InterviewTemplate
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid template id")
	if !ok {
		return
	}

	template, err := h.templateService.Get(actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// ListTemplates godoc
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.InterviewTemplate
// @Router       /api/v1/templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.List(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}
