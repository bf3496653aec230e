package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hemoscan-screening-server/internal/cache"
	"github.com/hemoscan-screening-server/internal/domain"
)

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	modelLoaded := true
	if _, err := s.prediction.ModelInfo(); err != nil {
		modelLoaded = false
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": modelLoaded,
		"timestamp":    time.Now().UTC(),
	})
}

// handlePredict returns the prediction handler for one request mode.
func (s *Server) handlePredict(mode domain.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("correlation_id")

		input := &domain.PatientInput{}
		if err := c.ShouldBindJSON(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":       domain.ErrInvalidInput,
				"message":    "Request body is not valid JSON for this endpoint",
				"details":    err.Error(),
				"request_id": requestID,
			})
			return
		}

		if response, ok := s.cachedResponse(c, mode, input); ok {
			c.JSON(http.StatusOK, response)
			return
		}

		response, err := s.prediction.Predict(c.Request.Context(), input, mode)
		if err != nil {
			s.writePredictionError(c, err, requestID)
			return
		}

		s.recordPrediction(c, input, mode, requestID, response)
		s.cacheResponse(c, mode, input, response)

		c.JSON(http.StatusOK, response)
	}
}

// writePredictionError maps engine failures onto HTTP responses. A missing
// model is a server-side failure; it is never papered over with a default
// classification.
func (s *Server) writePredictionError(c *gin.Context, err error, requestID string) {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]gin.H, 0, len(validationErrs))
		for _, ve := range validationErrs {
			fields = append(fields, gin.H{"field": ve.Field, "message": ve.Message})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"code":       domain.ErrValidation,
			"message":    "Input validation failed",
			"errors":     fields,
			"request_id": requestID,
		})
		return
	}

	if errors.Is(err, domain.ErrModelUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":       domain.ErrModelNotLoaded,
			"message":    "Classifier model is not loaded",
			"request_id": requestID,
		})
		return
	}

	s.logger.WithError(err).WithField("request_id", requestID).Error("Prediction failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":       domain.ErrPredictionFailed,
		"message":    "Prediction failed",
		"request_id": requestID,
	})
}

// recordPrediction persists the audit summary. Store failures are logged and
// never fail the request.
func (s *Server) recordPrediction(c *gin.Context, input *domain.PatientInput, mode domain.Mode, requestID string, response *domain.PredictionResponse) {
	if s.store == nil {
		return
	}

	record := &domain.PredictionRecord{
		RequestID:     requestID,
		Mode:          mode,
		Age:           input.Age,
		Gender:        input.Gender,
		Hemoglobin:    input.Hemoglobin,
		SeverityLabel: domain.Severity(response.SeverityLabel),
		Confidence:    response.Confidence,
		RiskScore:     response.RiskScore,
		RiskLevel:     response.RiskLevel,
		AlertCount:    len(response.Alerts),
	}

	if err := s.store.Save(c.Request.Context(), record); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Warn("Failed to record prediction")
	}
}

// cachedResponse checks the response cache; failures degrade to a miss.
func (s *Server) cachedResponse(c *gin.Context, mode domain.Mode, input *domain.PatientInput) (*domain.PredictionResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	key, err := cache.Key(mode, input)
	if err != nil {
		return nil, false
	}

	response, hit, err := s.cache.Get(c.Request.Context(), key)
	if err != nil {
		s.logger.WithError(err).Debug("Response cache lookup failed")
		return nil, false
	}
	return response, hit
}

func (s *Server) cacheResponse(c *gin.Context, mode domain.Mode, input *domain.PatientInput, response *domain.PredictionResponse) {
	if s.cache == nil {
		return
	}

	key, err := cache.Key(mode, input)
	if err != nil {
		return
	}
	if err := s.cache.Set(c.Request.Context(), key, response); err != nil {
		s.logger.WithError(err).Debug("Failed to cache response")
	}
}

// handleModelInfo returns the loaded artifact metadata.
func (s *Server) handleModelInfo(c *gin.Context) {
	info, err := s.prediction.ModelInfo()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":       domain.ErrModelNotLoaded,
			"message":    "Classifier model is not loaded",
			"request_id": c.GetString("correlation_id"),
		})
		return
	}

	c.JSON(http.StatusOK, info)
}

// handleListPredictions returns recent prediction audit summaries.
func (s *Server) handleListPredictions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    domain.ErrStoreError,
			"message": "Prediction history is not enabled",
		})
		return
	}

	limit := parsePositiveInt(c.Query("limit"), 50, 500)
	offset := parsePositiveInt(c.Query("offset"), 0, 1<<31-1)

	records, err := s.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list predictions")
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    domain.ErrStoreError,
			"message": "Failed to list predictions",
		})
		return
	}

	total, err := s.store.Count(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to count predictions")
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    domain.ErrStoreError,
			"message": "Failed to count predictions",
		})
		return
	}

	if records == nil {
		records = []*domain.PredictionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": records,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

func parsePositiveInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}
