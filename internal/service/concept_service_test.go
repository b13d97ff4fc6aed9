package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/policy"
	"biblioteca/internal/repository"
)

// MockConceptRepository is a mock implementation of ConceptRepository.
type MockConceptRepository struct {
	mock.Mock
}

func (m *MockConceptRepository) Create(ctx context.Context, concept *model.Concept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

func (m *MockConceptRepository) Update(ctx context.Context, concept *model.Concept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

func (m *MockConceptRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Concept, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Concept), args.Error(1)
}

func (m *MockConceptRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConceptRepository) List(ctx context.Context, filter repository.ConceptFilter, page repository.PageRequest) ([]model.Concept, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Concept), args.Get(1).(int64), args.Error(2)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func validCreateInput(categoryID uuid.UUID) CreateConceptInput {
	return CreateConceptInput{
		Title:       "Árboles binarios de búsqueda",
		Description: "Estructura ordenada para búsquedas logarítmicas",
		Content:     "Un árbol binario de búsqueda mantiene la propiedad de orden en cada nodo, lo que permite buscar en tiempo logarítmico.",
		CategoryID:  categoryID,
	}
}

func TestConceptService_Create(t *testing.T) {
	authorID := uuid.New()
	categoryID := uuid.New()
	actor := policy.Actor{ID: authorID, Role: model.RoleStudent, Authenticated: true}

	t.Run("successful create applies defaults", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockCategories := new(MockCategoryRepository)

		mockCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{ID: categoryID, Active: true}, nil)
		mockConcepts.On("Create", mock.Anything, mock.AnythingOfType("*model.Concept")).Run(func(args mock.Arguments) {
			concept := args.Get(1).(*model.Concept)
			assert.Equal(t, model.LevelBasic, concept.Level)
			assert.NotNil(t, concept.Tags)
			assert.NotNil(t, concept.Resources)
			assert.Equal(t, authorID, concept.AuthorID)
			assert.True(t, concept.Active)
			concept.ID = uuid.New()
		}).Return(nil)
		mockConcepts.On("FindActiveByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&model.Concept{
			Title:      "Árboles binarios de búsqueda",
			AuthorID:   authorID,
			CategoryID: categoryID,
			Author:     model.User{ID: authorID},
			Category:   model.Category{ID: categoryID},
		}, nil)

		service := NewConceptService(mockConcepts, mockCategories)
		concept, err := service.Create(context.Background(), actor, validCreateInput(categoryID))

		assert.NoError(t, err)
		assert.NotNil(t, concept)
		mockConcepts.AssertExpectations(t)
		mockCategories.AssertExpectations(t)
	})

	t.Run("unknown category persists nothing", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)

		service := NewConceptService(mockConcepts, mockCategories)
		concept, err := service.Create(context.Background(), actor, validCreateInput(categoryID))

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, concept)
		mockConcepts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("anonymous actor rejected", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockCategories := new(MockCategoryRepository)

		service := NewConceptService(mockConcepts, mockCategories)
		concept, err := service.Create(context.Background(), policy.Anonymous(), validCreateInput(categoryID))

		assert.Equal(t, errors.ErrUnauthorized, err)
		assert.Nil(t, concept)
		mockCategories.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestConceptService_GetByIDCountsViews(t *testing.T) {
	conceptID := uuid.New()

	mockConcepts := new(MockConceptRepository)
	mockCategories := new(MockCategoryRepository)
	mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(&model.Concept{ID: conceptID, Views: 3}, nil).Once()
	mockConcepts.On("IncrementViews", mock.Anything, conceptID).Return(nil).Once()

	service := NewConceptService(mockConcepts, mockCategories)
	concept, err := service.GetByID(context.Background(), conceptID)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), concept.Views)

	// Every fetch counts, including repeated ones.
	mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(&model.Concept{ID: conceptID, Views: 4}, nil).Once()
	mockConcepts.On("IncrementViews", mock.Anything, conceptID).Return(nil).Once()

	concept, err = service.GetByID(context.Background(), conceptID)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), concept.Views)

	mockConcepts.AssertExpectations(t)
}

func TestConceptService_GetByIDMissing(t *testing.T) {
	conceptID := uuid.New()

	mockConcepts := new(MockConceptRepository)
	mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(nil, gorm.ErrRecordNotFound)

	service := NewConceptService(mockConcepts, new(MockCategoryRepository))
	concept, err := service.GetByID(context.Background(), conceptID)

	assert.Equal(t, errors.ErrConceptNotFound, err)
	assert.Nil(t, concept)
	mockConcepts.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestConceptService_Update(t *testing.T) {
	conceptID := uuid.New()
	authorID := uuid.New()
	categoryID := uuid.New()
	newTitle := "Título actualizado para el concepto"

	stored := func() *model.Concept {
		return &model.Concept{
			ID:          conceptID,
			Title:       "Título original del concepto",
			Description: "Descripción original",
			Content:     "Contenido original con suficiente longitud para la validación del payload.",
			Level:       model.LevelIntermediate,
			AuthorID:    authorID,
			CategoryID:  categoryID,
			Active:      true,
		}
	}

	t.Run("author applies partial update", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(stored(), nil)
		mockConcepts.On("Update", mock.Anything, mock.MatchedBy(func(concept *model.Concept) bool {
			// Only the supplied field changes.
			return concept.Title == newTitle &&
				concept.Description == "Descripción original" &&
				concept.Level == model.LevelIntermediate
		})).Return(nil)

		service := NewConceptService(mockConcepts, new(MockCategoryRepository))
		actor := policy.Actor{ID: authorID, Role: model.RoleStudent, Authenticated: true}

		concept, err := service.Update(context.Background(), actor, conceptID, UpdateConceptInput{Title: &newTitle})
		assert.NoError(t, err)
		assert.NotNil(t, concept)
		mockConcepts.AssertExpectations(t)
	})

	t.Run("non-author student denied", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(stored(), nil)

		service := NewConceptService(mockConcepts, new(MockCategoryRepository))
		actor := policy.Actor{ID: uuid.New(), Role: model.RoleStudent, Authenticated: true}

		concept, err := service.Update(context.Background(), actor, conceptID, UpdateConceptInput{Title: &newTitle})
		assert.Equal(t, errors.ErrForbidden, err)
		assert.Nil(t, concept)
		mockConcepts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admin may update any concept", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(stored(), nil)
		mockConcepts.On("Update", mock.Anything, mock.AnythingOfType("*model.Concept")).Return(nil)

		service := NewConceptService(mockConcepts, new(MockCategoryRepository))
		actor := policy.Actor{ID: uuid.New(), Role: model.RoleAdmin, Authenticated: true}

		concept, err := service.Update(context.Background(), actor, conceptID, UpdateConceptInput{Title: &newTitle})
		assert.NoError(t, err)
		assert.NotNil(t, concept)
	})

	t.Run("changed category must resolve", func(t *testing.T) {
		missingID := uuid.New()
		mockConcepts := new(MockConceptRepository)
		mockCategories := new(MockCategoryRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(stored(), nil)
		mockCategories.On("FindByID", mock.Anything, missingID).Return(nil, gorm.ErrRecordNotFound)

		service := NewConceptService(mockConcepts, mockCategories)
		actor := policy.Actor{ID: authorID, Role: model.RoleStudent, Authenticated: true}

		concept, err := service.Update(context.Background(), actor, conceptID, UpdateConceptInput{CategoryID: &missingID})
		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, concept)
		mockConcepts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestConceptService_Delete(t *testing.T) {
	conceptID := uuid.New()
	authorID := uuid.New()

	t.Run("author soft-deletes", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(&model.Concept{
			ID: conceptID, AuthorID: authorID, Active: true,
		}, nil)
		mockConcepts.On("Update", mock.Anything, mock.MatchedBy(func(concept *model.Concept) bool {
			return concept.ID == conceptID && !concept.Active
		})).Return(nil)

		service := NewConceptService(mockConcepts, new(MockCategoryRepository))
		actor := policy.Actor{ID: authorID, Role: model.RoleStudent, Authenticated: true}

		assert.NoError(t, service.Delete(context.Background(), actor, conceptID))
		mockConcepts.AssertExpectations(t)
	})

	t.Run("already deleted behaves as missing", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(nil, gorm.ErrRecordNotFound)

		service := NewConceptService(mockConcepts, new(MockCategoryRepository))
		actor := policy.Actor{ID: authorID, Role: model.RoleStudent, Authenticated: true}

		assert.Equal(t, errors.ErrConceptNotFound, service.Delete(context.Background(), actor, conceptID))
	})

	t.Run("non-author denied", func(t *testing.T) {
		mockConcepts := new(MockConceptRepository)
		mockConcepts.On("FindActiveByID", mock.Anything, conceptID).Return(&model.Concept{
			ID: conceptID, AuthorID: authorID, Active: true,
		}, nil)

		service := NewConceptService(mockConcepts, new(MockCategoryRepository))
		actor := policy.Actor{ID: uuid.New(), Role: model.RoleTeacher, Authenticated: true}

		assert.Equal(t, errors.ErrForbidden, service.Delete(context.Background(), actor, conceptID))
		mockConcepts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
