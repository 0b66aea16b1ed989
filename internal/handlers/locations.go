package handlers

import (
	"net/http"

	"costasight-comparables/internal/apperrors"
	"costasight-comparables/internal/location"
	"costasight-comparables/internal/models"
	"costasight-comparables/internal/validators"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	resolver  *location.Resolver
	validator validators.SearchValidator
}

func NewLocationHandler(resolver *location.Resolver, validator validators.SearchValidator) *LocationHandler {
	return &LocationHandler{resolver: resolver, validator: validator}
}

// Resolve handles POST /api/locations/resolve.
func (h *LocationHandler) Resolve(c *gin.Context) {
	var req models.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.ValidateResolve(&req.Address, req.Hint); err != nil {
		appErr := apperrors.MapError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": gin.H{"message": appErr.UserMessage, "code": appErr.Code}})
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), req.Address, req.Hint)
	if err != nil {
		appErr := apperrors.MapError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": gin.H{"message": appErr.UserMessage, "code": appErr.Code}})
		return
	}
	c.JSON(http.StatusOK, result)
}
