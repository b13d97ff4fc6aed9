package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"biblioteca/internal/middleware"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
	"biblioteca/internal/service"
)

// ConceptHandler bundles the concept endpoints.
type ConceptHandler struct {
	svc service.ConceptService
}

// NewConceptHandler creates a handler layer.
func NewConceptHandler(svc service.ConceptService) *ConceptHandler {
	return &ConceptHandler{svc: svc}
}

// ResourceRequest is an attached learning resource in a concept payload.
type ResourceRequest struct {
	Type        string `json:"tipo" validate:"required,oneof=video documento imagen enlace"`
	Title       string `json:"titulo" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"descripcion"`
}

// CreateConceptRequest represents a new concept payload.
type CreateConceptRequest struct {
	Title       string            `json:"titulo" validate:"required,min=5,max=200"`
	Description string            `json:"descripcion" validate:"required,min=10"`
	Content     string            `json:"contenido" validate:"required,min=50"`
	CategoryID  string            `json:"categoriaId" validate:"required,uuid"`
	Level       string            `json:"nivel" validate:"omitempty,oneof=básico intermedio avanzado"`
	Tags        []string          `json:"tags"`
	Resources   []ResourceRequest `json:"recursos" validate:"omitempty,dive"`
}

// UpdateConceptRequest represents a partial concept update. Absent fields
// keep their stored values; the author cannot be changed.
type UpdateConceptRequest struct {
	Title       *string            `json:"titulo" validate:"omitempty,min=5,max=200"`
	Description *string            `json:"descripcion" validate:"omitempty,min=10"`
	Content     *string            `json:"contenido" validate:"omitempty,min=50"`
	CategoryID  *string            `json:"categoriaId" validate:"omitempty,uuid"`
	Level       *string            `json:"nivel" validate:"omitempty,oneof=básico intermedio avanzado"`
	Tags        *[]string          `json:"tags"`
	Resources   *[]ResourceRequest `json:"recursos" validate:"omitempty,dive"`
}

// levelFromQuery reads the optional nivel filter, rejecting values outside
// the level enum.
func levelFromQuery(c echo.Context) (model.Level, error) {
	level := model.Level(c.QueryParam("nivel"))
	if level != "" && !level.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid nivel")
	}
	return level, nil
}

func toResources(reqs []ResourceRequest) []model.Resource {
	resources := make([]model.Resource, 0, len(reqs))
	for _, r := range reqs {
		resources = append(resources, model.Resource{
			Type:        model.ResourceType(r.Type),
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return resources
}

// ListConcepts godoc
// @Summary List active concepts
// @Tags concepts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param categoria query string false "Filter by category name"
// @Param nivel query string false "Filter by level"
// @Param search query string false "Substring match over title, description and content"
// @Success 200 {object} Response
// @Router /concepts [get]
func (h *ConceptHandler) ListConcepts(c echo.Context) error {
	page := pageFromQuery(c)
	level, err := levelFromQuery(c)
	if err != nil {
		return err
	}
	filter := repository.ConceptFilter{
		Category: c.QueryParam("categoria"),
		Level:    level,
		Search:   c.QueryParam("search"),
	}

	concepts, total, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "concepts retrieved successfully", concepts, NewPagination(page, total))
}

// SearchConcepts godoc
// @Summary Search concepts
// @Tags concepts
// @Produce json
// @Param q query string false "Substring match, also over tags"
// @Param categoria query string false "Filter by category name"
// @Param nivel query string false "Filter by level"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Router /concepts/search [get]
func (h *ConceptHandler) SearchConcepts(c echo.Context) error {
	page := pageFromQuery(c)
	level, err := levelFromQuery(c)
	if err != nil {
		return err
	}
	filter := repository.ConceptFilter{
		Category:  c.QueryParam("categoria"),
		Level:     level,
		Search:    c.QueryParam("q"),
		MatchTags: true,
	}

	concepts, total, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "search completed", concepts, NewPagination(page, total))
}

// ConceptsByCategory godoc
// @Summary List concepts of a category
// @Tags concepts
// @Produce json
// @Param category path string true "Category name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Router /concepts/category/{category} [get]
func (h *ConceptHandler) ConceptsByCategory(c echo.Context) error {
	page := pageFromQuery(c)
	filter := repository.ConceptFilter{Category: c.Param("category")}

	concepts, total, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "concepts retrieved successfully", concepts, NewPagination(page, total))
}

// GetConcept godoc
// @Summary Get concept by id
// @Description Returns the concept and increments its view counter.
// @Tags concepts
// @Produce json
// @Param id path string true "Concept ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /concepts/{id} [get]
func (h *ConceptHandler) GetConcept(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	concept, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "concept retrieved successfully", concept)
}

// CreateConcept godoc
// @Summary Create a concept
// @Tags concepts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateConceptRequest true "Concept payload"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /concepts [post]
func (h *ConceptHandler) CreateConcept(c echo.Context) error {
	var req CreateConceptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid categoriaId")
	}

	input := service.CreateConceptInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  categoryID,
		Level:       model.Level(req.Level),
		Tags:        req.Tags,
	}
	if req.Resources != nil {
		input.Resources = toResources(req.Resources)
	}

	concept, err := h.svc.Create(c.Request().Context(), middleware.ActorFromContext(c), input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "concept created successfully", concept)
}

// UpdateConcept godoc
// @Summary Update a concept
// @Tags concepts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Concept ID"
// @Param request body UpdateConceptRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /concepts/{id} [put]
func (h *ConceptHandler) UpdateConcept(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateConceptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UpdateConceptInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid categoriaId")
		}
		input.CategoryID = &categoryID
	}
	if req.Level != nil {
		level := model.Level(*req.Level)
		input.Level = &level
	}
	if req.Resources != nil {
		resources := toResources(*req.Resources)
		input.Resources = &resources
	}

	concept, err := h.svc.Update(c.Request().Context(), middleware.ActorFromContext(c), id, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "concept updated successfully", concept)
}

// DeleteConcept godoc
// @Summary Soft-delete a concept
// @Tags concepts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Concept ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /concepts/{id} [delete]
func (h *ConceptHandler) DeleteConcept(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), middleware.ActorFromContext(c), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "concept deleted successfully", nil)
}
