package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hemoscan-screening-server/internal/domain"
)

// PredictionService runs the full screening pipeline and assembles the
// response. It holds no mutable state: the classifier handle is immutable
// after startup, so the service is fully reentrant.
type PredictionService struct {
	logger     *logrus.Logger
	classifier domain.Classifier
	scorer     *RiskScorer
	alerts     *AlertGenerator
	factors    *RiskFactorReporter
	forecaster *Forecaster
	recommend  *RecommendationBuilder
}

// NewPredictionService creates the prediction service. A nil classifier is
// permitted: every prediction then fails with ErrModelUnavailable until the
// process is restarted with a loaded artifact.
func NewPredictionService(logger *logrus.Logger, classifier domain.Classifier) *PredictionService {
	return &PredictionService{
		logger:     logger,
		classifier: classifier,
		scorer:     NewRiskScorer(logger),
		alerts:     NewAlertGenerator(),
		factors:    NewRiskFactorReporter(),
		forecaster: NewForecaster(),
		recommend:  NewRecommendationBuilder(),
	}
}

// Predict validates the input for the selected mode, derives features,
// classifies, scores and assembles the complete response. It never produces a
// partial response: validation failures and a missing model abort the request.
func (s *PredictionService) Predict(ctx context.Context, input *domain.PatientInput, mode domain.Mode) (*domain.PredictionResponse, error) {
	startTime := time.Now()

	if input == nil {
		return nil, domain.ValidationErrors{domain.NewValidationError("body", "request body is required", nil)}
	}
	if errs := input.Validate(mode); len(errs) > 0 {
		return nil, errs
	}
	if s.classifier == nil {
		return nil, domain.ErrModelUnavailable
	}

	derived := DeriveFeatures(input)
	vector := BuildFeatureVector(input, derived)

	s.logger.WithFields(logrus.Fields{
		"mode":     string(mode),
		"features": len(vector),
	}).Debug("Starting severity classification")

	classification, err := s.classifier.Classify(vector)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("classifying feature vector: %w", err)
	}

	breakdown, err := s.scorer.Score(input, classification, mode)
	if err != nil {
		return nil, fmt.Errorf("scoring risk: %w", err)
	}

	alerts := s.alerts.Generate(input, classification, breakdown.Total)
	riskFactors := s.factors.Report(input)
	futureRisk := s.forecaster.Forecast(input, classification, breakdown, mode)
	recommendations := s.recommend.Build(input, classification, breakdown.Total)

	response := &domain.PredictionResponse{
		SeverityLabel:   classification.Severity.String(),
		Probabilities:   classification.Probabilities,
		Confidence:      classification.Confidence,
		ModelAccuracy:   classification.ModelAccuracy,
		RiskScore:       breakdown.Total,
		RiskLevel:       breakdown.Level,
		Alerts:          alerts,
		RiskFactors:     riskFactors,
		FutureRisk:      futureRisk,
		Recommendations: recommendations,
	}

	s.logger.WithFields(logrus.Fields{
		"mode":            string(mode),
		"severity":        response.SeverityLabel,
		"confidence":      response.Confidence,
		"risk_score":      response.RiskScore,
		"risk_level":      response.RiskLevel.String(),
		"alerts":          len(response.Alerts),
		"processing_time": time.Since(startTime),
	}).Info("Prediction completed")

	return response, nil
}

// ModelInfo returns the loaded artifact metadata, or ErrModelUnavailable when
// no classifier is loaded.
func (s *PredictionService) ModelInfo() (*domain.ModelInfo, error) {
	if s.classifier == nil {
		return nil, domain.ErrModelUnavailable
	}
	info := s.classifier.Info()
	if info == nil {
		return nil, domain.ErrModelUnavailable
	}
	return info, nil
}
