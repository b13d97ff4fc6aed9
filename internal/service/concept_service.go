package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/policy"
	"biblioteca/internal/repository"
)

// CreateConceptInput carries the caller-supplied fields for a new concept.
// Id, views, timestamps and the author reference are server-assigned.
type CreateConceptInput struct {
	Title       string
	Description string
	Content     string
	CategoryID  uuid.UUID
	Level       model.Level
	Tags        []string
	Resources   []model.Resource
}

// UpdateConceptInput carries a partial concept update; nil fields are left
// untouched. The author reference is immutable and deliberately absent.
type UpdateConceptInput struct {
	Title       *string
	Description *string
	Content     *string
	CategoryID  *uuid.UUID
	Level       *model.Level
	Tags        *[]string
	Resources   *[]model.Resource
}

// ConceptService orchestrates the concept lifecycle, applying access policy
// before every mutation.
type ConceptService interface {
	Create(ctx context.Context, actor policy.Actor, input CreateConceptInput) (*model.Concept, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Concept, error)
	List(ctx context.Context, filter repository.ConceptFilter, page repository.PageRequest) ([]model.Concept, int64, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, input UpdateConceptInput) (*model.Concept, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}

type conceptService struct {
	conceptRepo  repository.ConceptRepository
	categoryRepo repository.CategoryRepository
}

// NewConceptService creates a new concept service.
func NewConceptService(conceptRepo repository.ConceptRepository, categoryRepo repository.CategoryRepository) ConceptService {
	return &conceptService{
		conceptRepo:  conceptRepo,
		categoryRepo: categoryRepo,
	}
}

// Create persists a new concept authored by the actor. The category must
// resolve to an existing record; nothing is persisted otherwise.
func (s *conceptService) Create(ctx context.Context, actor policy.Actor, input CreateConceptInput) (*model.Concept, error) {
	if !actor.Authenticated {
		return nil, errors.ErrUnauthorized
	}

	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	level := input.Level
	if level == "" {
		level = model.LevelBasic
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	resources := input.Resources
	if resources == nil {
		resources = []model.Resource{}
	}

	concept := &model.Concept{
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		Level:       level,
		Tags:        tags,
		Resources:   resources,
		Active:      true,
		AuthorID:    actor.ID,
		CategoryID:  input.CategoryID,
	}
	if err := s.conceptRepo.Create(ctx, concept); err != nil {
		return nil, fmt.Errorf("create concept: %w", err)
	}

	// Re-fetch so the response carries the joined author and category.
	return s.conceptRepo.FindActiveByID(ctx, concept.ID)
}

// GetByID returns an active concept and increments its view counter. Every
// successful detail fetch counts, including anonymous and repeated ones.
func (s *conceptService) GetByID(ctx context.Context, id uuid.UUID) (*model.Concept, error) {
	concept, err := s.conceptRepo.FindActiveByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrConceptNotFound
		}
		return nil, err
	}

	if err := s.conceptRepo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	concept.Views++
	return concept, nil
}

// List delegates to the composed repository query.
func (s *conceptService) List(ctx context.Context, filter repository.ConceptFilter, page repository.PageRequest) ([]model.Concept, int64, error) {
	return s.conceptRepo.List(ctx, filter, page)
}

// Update applies a partial update after the write policy passes. A changed
// category must resolve, and the response reflects re-joined relations.
func (s *conceptService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, input UpdateConceptInput) (*model.Concept, error) {
	concept, err := s.conceptRepo.FindActiveByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrConceptNotFound
		}
		return nil, err
	}

	if !policy.CanWriteConcept(actor, concept.AuthorID) {
		return nil, errors.ErrForbidden
	}

	if input.CategoryID != nil && *input.CategoryID != concept.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		concept.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		concept.Title = *input.Title
	}
	if input.Description != nil {
		concept.Description = *input.Description
	}
	if input.Content != nil {
		concept.Content = *input.Content
	}
	if input.Level != nil {
		concept.Level = *input.Level
	}
	if input.Tags != nil {
		concept.Tags = *input.Tags
	}
	if input.Resources != nil {
		concept.Resources = *input.Resources
	}

	if err := s.conceptRepo.Update(ctx, concept); err != nil {
		return nil, fmt.Errorf("update concept: %w", err)
	}
	return s.conceptRepo.FindActiveByID(ctx, id)
}

// Delete soft-deletes a concept after the delete policy passes. A concept
// that is already inactive behaves as missing.
func (s *conceptService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	concept, err := s.conceptRepo.FindActiveByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrConceptNotFound
		}
		return err
	}

	if !policy.CanDeleteConcept(actor, concept.AuthorID) {
		return errors.ErrForbidden
	}

	concept.Active = false
	if err := s.conceptRepo.Update(ctx, concept); err != nil {
		return fmt.Errorf("deactivate concept: %w", err)
	}
	return nil
}
