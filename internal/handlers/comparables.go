package handlers

import (
	"net/http"

	"costasight-comparables/internal/apperrors"
	"costasight-comparables/internal/comparables"
	"costasight-comparables/internal/feed"
	"costasight-comparables/internal/models"
	"costasight-comparables/internal/stats"
	"costasight-comparables/internal/validators"

	"github.com/gin-gonic/gin"
)

type ComparablesHandler struct {
	provider   *feed.Provider
	matcher    *comparables.Matcher
	aggregator *stats.Aggregator
	validator  validators.SearchValidator
}

func NewComparablesHandler(provider *feed.Provider, matcher *comparables.Matcher, aggregator *stats.Aggregator, validator validators.SearchValidator) *ComparablesHandler {
	return &ComparablesHandler{
		provider:   provider,
		matcher:    matcher,
		aggregator: aggregator,
		validator:  validator,
	}
}

// FindComparables handles POST /api/comparables. The body is the subject's
// search criteria; the response is the ranked comparable list plus the
// market statistics for the same scope.
func (h *ComparablesHandler) FindComparables(c *gin.Context) {
	var criteria models.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.ValidateCriteria(&criteria); err != nil {
		appErr := apperrors.MapError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": gin.H{"message": appErr.UserMessage, "code": appErr.Code}})
		return
	}

	snapshot, err := h.provider.Load(c.Request.Context())
	if err != nil {
		appErr := apperrors.MapError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": gin.H{"message": appErr.UserMessage, "code": appErr.Code}})
		return
	}

	result, err := h.matcher.FindComparables(c.Request.Context(), criteria, snapshot.Records)
	if err != nil {
		appErr := apperrors.MapError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": gin.H{"message": appErr.UserMessage, "code": appErr.Code}})
		return
	}

	response := models.ComparablesResponse{
		Comparables:     result.Comparables,
		Degraded:        result.Degraded,
		SubjectLocation: result.SubjectLoc,
		MarketStats:     h.aggregator.Compute(criteria.City, criteria.PropertyType, snapshot.Records),
		FeedDegraded:    snapshot.Degraded,
	}
	c.JSON(http.StatusOK, response)
}

// GetMarketStats handles GET /api/market-stats?city=&type=.
func (h *ComparablesHandler) GetMarketStats(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'city' is required"})
		return
	}
	propertyType := models.PropertyType(c.Query("type"))

	snapshot, err := h.provider.Load(c.Request.Context())
	if err != nil {
		appErr := apperrors.MapError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": gin.H{"message": appErr.UserMessage, "code": appErr.Code}})
		return
	}

	c.JSON(http.StatusOK, h.aggregator.Compute(city, propertyType, snapshot.Records))
}
