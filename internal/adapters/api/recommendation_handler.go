package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"healthadvisor.app/internal/core/health"
	"healthadvisor.app/pkg/errors"
)

// locationQuery is the query string shared by both advisory endpoints
type locationQuery struct {
	City    string `form:"city" binding:"required"`
	Country string `form:"country"`
}

func (s *HTTPServerAdapter) bindLocation(c *gin.Context) (locationQuery, error) {
	var query locationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return query, errors.NewValidationError(describeBindingError(err))
	}
	return query, nil
}

// getRecommendations handles GET /recommendations
func (s *HTTPServerAdapter) getRecommendations(c *gin.Context) {
	query, err := s.bindLocation(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	recommendation, err := s.healthUseCase.GetRecommendation(c.Request.Context(), health.RecommendationRequest{
		City:    query.City,
		Country: query.Country,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// getAlertStatus handles GET /alert-status
func (s *HTTPServerAdapter) getAlertStatus(c *gin.Context) {
	query, err := s.bindLocation(c)
	if err != nil {
		s.handleAlertStatusError(c, err)
		return
	}

	status, err := s.healthUseCase.GetAlertStatus(c.Request.Context(), health.AlertStatusRequest{
		City:    query.City,
		Country: query.Country,
	})
	if err != nil {
		s.handleAlertStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
