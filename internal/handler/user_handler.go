package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"biblioteca/internal/middleware"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
	"biblioteca/internal/service"
)

// UserHandler bundles user management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest represents a partial user update. Absent fields keep
// their stored values.
type UpdateUserRequest struct {
	Name     *string `json:"nombre" validate:"omitempty,min=2,max=50"`
	Phone    *string `json:"telefono" validate:"omitempty,max=20"`
	Role     *string `json:"role" validate:"omitempty,oneof=estudiante profesor admin"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// ListUsers godoc
// @Summary List active users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param role query string false "Filter by role"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page := pageFromQuery(c)
	role := model.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	filter := repository.UserFilter{Role: role}

	users, total, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "users retrieved successfully", users, NewPagination(page, total))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := h.svc.Get(c.Request().Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user retrieved successfully", user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UpdateUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.svc.Update(c.Request().Context(), middleware.ActorFromContext(c), id, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user updated successfully", user)
}

// DeleteUser godoc
// @Summary Soft-delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), middleware.ActorFromContext(c), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user deleted successfully", nil)
}

// pageFromQuery reads page/limit query parameters. Non-numeric and
// non-positive values fall back to the normalized defaults.
func pageFromQuery(c echo.Context) repository.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.PageRequest{Page: page, Limit: limit}.Normalize()
}
