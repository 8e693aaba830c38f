package handler

import (
	"errors"
	"net/http"

	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response wrapping the payload in the envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 response carrying the message
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// InternalError sends a 500 response. The message is always generic;
// internal failure detail never leaves the server.
func (h *BaseHandler) InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("An unexpected error occurred"))
}

// HandleError renders an operation error. Domain refusals surface with
// their own message and a client-error status; anything else is a server
// fault and renders opaquely as 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Message))
		return
	}

	h.InternalError(c)
}
