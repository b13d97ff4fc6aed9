package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"biblioteca/internal/cache"
	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

const (
	categoryCacheKey = "categories:active"
	categoryCacheTTL = 5 * time.Minute
)

// CreateCategoryInput carries the fields for a new category. Color and icon
// fall back to the model defaults when empty.
type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// CategoryService exposes the public category listing and admin creation.
type CategoryService interface {
	ListActive(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService builds a CategoryService with repository and cache.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

// ListActive returns active categories, cached briefly since they change
// rarely and every concept form needs them.
func (s *categoryService) ListActive(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, categoryCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, categoryCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// Create persists a new category with a unique name. Admin gating happens at
// the route level.
func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	existing, err := s.repo.FindByName(ctx, input.Name)
	if err == nil && existing != nil {
		return nil, errors.ErrCategoryExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	color := input.Color
	if color == "" {
		color = "#667eea"
	}
	icon := input.Icon
	if icon == "" {
		icon = "📚"
	}

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		Color:       color,
		Icon:        icon,
		Active:      true,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryCacheKey)
	return category, nil
}
