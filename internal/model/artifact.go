// Package model implements the classifier adapter: it loads a trained severity
// model artifact once at startup and serves deterministic classifications from
// it. The artifact is produced offline by the training pipeline and bundles a
// standardized multinomial-logistic model with its scaler and quality
// metadata, so the engine never depends on how the model was fitted.
package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hemoscan-screening-server/internal/domain"
)

// Artifact is the on-disk representation of a trained severity model.
// Means double as the adapter's imputation policy for features absent from a
// request vector: a quick-mode request classifies against the training
// population average for every column it cannot supply.
type Artifact struct {
	ModelName       string   `json:"model_name"`
	Version         string   `json:"version"`
	Accuracy        float64  `json:"accuracy"`
	CVMean          float64  `json:"cv_mean"`
	TrainingSamples int      `json:"training_samples"`
	Labels          []string `json:"labels"`
	Features        []string `json:"features"`

	// Scaler parameters, one entry per feature column.
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`

	// Multinomial logistic parameters: one coefficient row and one intercept
	// per label, coefficients in feature-column order.
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`

	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// Validate checks the artifact for internal consistency before it is served.
func (a *Artifact) Validate() error {
	if len(a.Labels) != len(domain.SeverityLabels) {
		return fmt.Errorf("artifact must define %d labels, got %d", len(domain.SeverityLabels), len(a.Labels))
	}
	for i, label := range a.Labels {
		if label != domain.SeverityLabels[i].String() {
			return fmt.Errorf("artifact label %d is %q, want %q", i, label, domain.SeverityLabels[i])
		}
	}
	if len(a.Features) == 0 {
		return fmt.Errorf("artifact defines no features")
	}
	if len(a.Means) != len(a.Features) {
		return fmt.Errorf("artifact has %d means for %d features", len(a.Means), len(a.Features))
	}
	if len(a.Scales) != len(a.Features) {
		return fmt.Errorf("artifact has %d scales for %d features", len(a.Scales), len(a.Features))
	}
	if len(a.Coefficients) != len(a.Labels) {
		return fmt.Errorf("artifact has %d coefficient rows for %d labels", len(a.Coefficients), len(a.Labels))
	}
	for i, row := range a.Coefficients {
		if len(row) != len(a.Features) {
			return fmt.Errorf("coefficient row %d has %d columns for %d features", i, len(row), len(a.Features))
		}
	}
	if len(a.Intercepts) != len(a.Labels) {
		return fmt.Errorf("artifact has %d intercepts for %d labels", len(a.Intercepts), len(a.Labels))
	}
	if a.Accuracy < 0 || a.Accuracy > 1 {
		return fmt.Errorf("artifact accuracy %f outside [0,1]", a.Accuracy)
	}
	return nil
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	artifact := &Artifact{}
	if err := json.Unmarshal(data, artifact); err != nil {
		return nil, fmt.Errorf("parsing model artifact: %w", err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	return artifact, nil
}
