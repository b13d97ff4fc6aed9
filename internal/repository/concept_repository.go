package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"biblioteca/internal/model"
)

// ConceptFilter holds independently optional listing criteria. Criteria
// combine with AND; soft-deleted concepts are always excluded.
type ConceptFilter struct {
	// Category is an exact name match against active categories.
	Category string
	// Level is an exact match against the level enum.
	Level model.Level
	// Search is a case-insensitive substring match over title, description
	// and content. With MatchTags set it also matches the serialized tag
	// list (the /search variant).
	Search    string
	MatchTags bool
}

// ConceptRepository defines concept persistence operations, including the
// composed list query. Results carry author and category joined so responses
// are self-contained.
type ConceptRepository interface {
	Create(ctx context.Context, concept *model.Concept) error
	Update(ctx context.Context, concept *model.Concept) error
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Concept, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ConceptFilter, page PageRequest) ([]model.Concept, int64, error)
}

type conceptRepository struct {
	db *gorm.DB
}

// NewConceptRepository builds a GORM-backed repository.
func NewConceptRepository(db *gorm.DB) ConceptRepository {
	return &conceptRepository{db: db}
}

func (r *conceptRepository) Create(ctx context.Context, concept *model.Concept) error {
	return r.db.WithContext(ctx).Omit("Author", "Category").Create(concept).Error
}

func (r *conceptRepository) Update(ctx context.Context, concept *model.Concept) error {
	return r.db.WithContext(ctx).Omit("Author", "Category").Save(concept).Error
}

func (r *conceptRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Concept, error) {
	var concept model.Concept
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("id = ? AND active = ?", id, true).
		First(&concept).Error; err != nil {
		return nil, err
	}
	return &concept, nil
}

// IncrementViews bumps the view counter in place. Concurrent detail fetches
// are resolved by the database; the caller's in-memory copy may lag.
func (r *conceptRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Concept{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *conceptRepository) List(ctx context.Context, filter ConceptFilter, page PageRequest) ([]model.Concept, int64, error) {
	page = page.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Concept{}).
		Where("concepts.active = ?", true)

	if filter.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = concepts.category_id").
			Where("categories.name = ? AND categories.active = ?", filter.Category, true)
	}
	if filter.Level != "" {
		q = q.Where("concepts.level = ?", filter.Level)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		if filter.MatchTags {
			q = q.Where(
				"(concepts.title ILIKE ? OR concepts.description ILIKE ? OR concepts.content ILIKE ? OR concepts.tags::text ILIKE ?)",
				pattern, pattern, pattern, pattern,
			)
		} else {
			q = q.Where(
				"(concepts.title ILIKE ? OR concepts.description ILIKE ? OR concepts.content ILIKE ?)",
				pattern, pattern, pattern,
			)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var concepts []model.Concept
	if err := q.Preload("Author").
		Preload("Category").
		Order("concepts.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&concepts).Error; err != nil {
		return nil, 0, err
	}
	return concepts, total, nil
}
