package handler

import (
	"errors"
	"net/http"

	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/interfaces/http/dto"
	"github.com/companies-office/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// OK sends a 200 response with the resource as the body
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the resource as the body
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response for the given code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	resp := dto.NewErrorResponse(code, message, c.Request.URL.Path, getRequestID(c))
	c.JSON(resp.Status, resp)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// BindError sends a 400 response for a request binding failure, with
// validation failures rendered per field
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.Error(c, dto.ErrCodeBadRequest, middleware.ValidationMessage(err))
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, shared.ErrCodeNotFound, message)
}

// HandleDomainError translates a domain error into the structured error
// response, falling back to a 500 for unknown error types.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message)
		return
	}
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// uuidParam parses a UUID path parameter, replying 400 itself on failure
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" path parameter")
		return uuid.Nil, false
	}
	return id, true
}
