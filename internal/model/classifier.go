package model

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hemoscan-screening-server/internal/domain"
)

// Classifier serves severity classifications from a loaded artifact. The
// artifact is immutable after construction, so a single Classifier is safely
// shared across concurrent requests without locking.
type Classifier struct {
	artifact *Artifact
	logger   *logrus.Logger
}

// NewClassifier wraps a validated artifact.
func NewClassifier(artifact *Artifact, logger *logrus.Logger) (*Classifier, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact is required")
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact: %w", err)
	}
	return &Classifier{artifact: artifact, logger: logger}, nil
}

// Load reads an artifact from disk and returns a ready classifier.
func Load(path string, logger *logrus.Logger) (*Classifier, error) {
	artifact, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"model_name":       artifact.ModelName,
		"version":          artifact.Version,
		"accuracy":         artifact.Accuracy,
		"features":         len(artifact.Features),
		"training_samples": artifact.TrainingSamples,
	}).Info("Classifier artifact loaded")

	return &Classifier{artifact: artifact, logger: logger}, nil
}

// Classify computes the four-class probability distribution for the given
// feature vector. Features absent from the vector are imputed with the
// training means recorded in the artifact, which makes quick-mode partial
// vectors first-class inputs. The result is fully deterministic.
func (c *Classifier) Classify(features domain.FeatureVector) (*domain.ClassificationResult, error) {
	if c == nil || c.artifact == nil {
		return nil, domain.ErrModelUnavailable
	}
	a := c.artifact

	// Standardize in artifact column order, imputing missing columns.
	scaled := make([]float64, len(a.Features))
	imputed := 0
	for i, name := range a.Features {
		value, ok := features[name]
		if !ok {
			value = a.Means[i]
			imputed++
		}
		scale := a.Scales[i]
		if scale <= 0 {
			scale = 1
		}
		scaled[i] = (value - a.Means[i]) / scale
	}

	// Class logits and stable softmax.
	logits := make([]float64, len(a.Labels))
	maxLogit := math.Inf(-1)
	for k := range a.Labels {
		z := a.Intercepts[k]
		for i, x := range scaled {
			z += a.Coefficients[k][i] * x
		}
		logits[k] = z
		if z > maxLogit {
			maxLogit = z
		}
	}

	var sum float64
	probs := make([]float64, len(logits))
	for k, z := range logits {
		probs[k] = math.Exp(z - maxLogit)
		sum += probs[k]
	}

	best := 0
	probabilities := make(map[domain.Severity]float64, len(probs))
	for k, p := range probs {
		pct := round2(p / sum * 100)
		probabilities[domain.SeverityLabels[k]] = pct
		if probs[k] > probs[best] {
			best = k
		}
	}

	severity := domain.SeverityLabels[best]
	result := &domain.ClassificationResult{
		Severity:      severity,
		Probabilities: probabilities,
		Confidence:    probabilities[severity],
		ModelAccuracy: round2(a.Accuracy * 100),
	}

	c.logger.WithFields(logrus.Fields{
		"severity":         severity.String(),
		"confidence":       result.Confidence,
		"imputed_features": imputed,
	}).Debug("Classified feature vector")

	return result, nil
}

// Info returns the static artifact metadata.
func (c *Classifier) Info() *domain.ModelInfo {
	if c == nil || c.artifact == nil {
		return nil
	}
	a := c.artifact
	return &domain.ModelInfo{
		ModelName:         a.ModelName,
		Accuracy:          round2(a.Accuracy * 100),
		CVScore:           round2(a.CVMean * 100),
		Features:          a.Features,
		TrainingSamples:   a.TrainingSamples,
		FeatureImportance: a.FeatureImportance,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
