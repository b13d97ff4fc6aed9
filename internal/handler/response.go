package handler

import (
	"github.com/labstack/echo/v4"

	"biblioteca/internal/repository"
)

// Pagination describes the page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination derives the response pagination from a normalized page
// request and the total match count.
func NewPagination(page repository.PageRequest, total int64) *Pagination {
	page = page.Normalize()
	pages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return &Pagination{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Pages: pages,
	}
}

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondPage(c echo.Context, status int, message string, data interface{}, pagination *Pagination) error {
	return c.JSON(status, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}
