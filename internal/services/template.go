package services

import (
	"errors"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"gorm.io/gorm"
)

type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

type TemplateQuestionInput struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type CreateTemplateInput struct {
	Title       string
	Description string
	Questions   []TemplateQuestionInput
}

func (s *TemplateService) Create(actor authz.Actor, input CreateTemplateInput) (*models.InterviewTemplate, error) {
	const op = "create_template"

	if actor.Role != models.RoleRecruiter && actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden(op, 0, "only recruiters can create templates")
	}
	if input.Title == "" {
		return nil, apperrors.Validation(op, "template title is required")
	}
	if len(input.Questions) == 0 {
		return nil, apperrors.Validation(op, "template must have at least one question")
	}

	template := models.InterviewTemplate{
		RecruiterID: actor.ID,
		Title:       input.Title,
		Description: input.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		for i, q := range input.Questions {
			if q.Text == "" {
				return apperrors.Validation(op, "question text is required")
			}
			question := models.TemplateQuestion{
				TemplateID: template.ID,
				Text:       q.Text,
				Category:   q.Category,
				OrderNum:   i + 1,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&template, template.ID)
	return &template, nil
}

func (s *TemplateService) Get(actor authz.Actor, id uint) (*models.InterviewTemplate, error) {
	const op = "get_template"

	var template models.InterviewTemplate
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&template, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "template not found")
		}
		return nil, err
	}

	if actor.Role == models.RoleRecruiter && template.RecruiterID != actor.ID {
		return nil, apperrors.Forbidden(op, 0, "template belongs to another recruiter")
	}
	if actor.Role == models.RoleCandidate {
		return nil, apperrors.Forbidden(op, 0, "candidates cannot view templates")
	}
	return &template, nil
}

func (s *TemplateService) List(actor authz.Actor) ([]models.InterviewTemplate, error) {
	const op = "list_templates"

	query := s.db.Order("created_at DESC")
	switch actor.Role {
	case models.RoleRecruiter:
		query = query.Where("recruiter_id = ?", actor.ID)
	case models.RoleAdmin:
	default:
		return nil, apperrors.Forbidden(op, 0, "candidates cannot list templates")
	}

	var templates []models.InterviewTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
