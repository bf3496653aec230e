package domain

import (
	"context"
)

// Classifier is the fixed-contract boundary to the trained severity model.
// Implementations must be deterministic for identical feature vectors and must
// return a complete four-class probability distribution regardless of input
// completeness. A Classifier with no loaded artifact returns
// ErrModelUnavailable and never a default classification.
type Classifier interface {
	Classify(features FeatureVector) (*ClassificationResult, error)
	Info() *ModelInfo
}

// PredictionStore records per-request audit summaries of completed
// predictions. Implementations must be safe for concurrent use.
type PredictionStore interface {
	Save(ctx context.Context, record *PredictionRecord) error
	List(ctx context.Context, limit, offset int) ([]*PredictionRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

// ResponseCache caches assembled prediction responses keyed by request
// content. The engine is deterministic, so identical inputs always map to
// identical responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*PredictionResponse, bool, error)
	Set(ctx context.Context, key string, response *PredictionResponse) error
}
