package service

import (
	"math"

	"github.com/hemoscan-screening-server/internal/domain"
)

// Growth-curve parameters for the future-risk projection. Each horizon adds a
// diminishing increment of the unresolved risk weight; the fractions are the
// tunable curve shape, constrained only to be monotone non-decreasing.
const (
	growthThreeMonths  = 0.20
	growthSixMonths    = 0.35
	growthTwelveMonths = 0.50

	// forecastCeiling caps every horizon percentage.
	forecastCeiling = 95.0

	// stableCeiling caps the flat projection of a healthy patient.
	stableCeiling = 15.0

	// trendTolerance is the margin the 12-month value must exceed the current
	// score by before the trend counts as increasing.
	trendTolerance = 1.0
)

// Forecaster projects the risk trajectory at the 3/6/12-month horizons from
// the current score and the unresolved risk-factor weight.
type Forecaster struct{}

// NewForecaster creates a future-risk forecaster.
func NewForecaster() *Forecaster {
	return &Forecaster{}
}

// Forecast projects future risk. A Normal classification with no modifiable
// risk factors projects flat at a low ceiling; anything else follows the fixed
// growth curve, producing a monotonically non-decreasing horizon sequence.
func (f *Forecaster) Forecast(input *domain.PatientInput, classification *domain.ClassificationResult, breakdown *ScoreBreakdown, mode domain.Mode) domain.FutureRisk {
	baseline := float64(breakdown.Total)

	if classification.Severity == domain.SeverityNormal && !hasModifiableFactors(input, mode) {
		flat := math.Min(baseline, stableCeiling)
		return domain.FutureRisk{
			ThreeMonths:  flat,
			SixMonths:    flat,
			TwelveMonths: flat,
			Trend:        domain.TrendStable,
			Preventable:  true,
		}
	}

	// Unresolved weight: the symptom and history/lifestyle score buckets are
	// exactly the contributions a patient can still accumulate or shed.
	unresolved := breakdown.Symptoms + breakdown.History

	three := project(baseline, unresolved, growthThreeMonths)
	six := project(baseline, unresolved, growthSixMonths)
	twelve := project(baseline, unresolved, growthTwelveMonths)

	trend := domain.TrendStable
	if twelve > baseline+trendTolerance {
		trend = domain.TrendIncreasing
	}

	return domain.FutureRisk{
		ThreeMonths:  three,
		SixMonths:    six,
		TwelveMonths: twelve,
		Trend:        trend,
		Preventable:  preventable(input, baseline),
	}
}

// project applies one growth-curve step, capped at the forecast ceiling.
func project(baseline, unresolved, fraction float64) float64 {
	return round1(math.Min(forecastCeiling, baseline+unresolved*fraction))
}

// preventable reports whether the 12-month projection stays under the High
// threshold once modifiable factors (diet, symptom management) are addressed.
// Only the non-modifiable weight (chronic disease, pregnancy, family history)
// is projected forward for this check.
func preventable(input *domain.PatientInput, baseline float64) bool {
	nonModifiable := 0.0
	if input.ChronicDisease {
		nonModifiable += 5
	}
	if input.Pregnancy {
		nonModifiable += 5
	}
	if input.FamilyHistoryAnemia {
		nonModifiable += 5
	}

	twelve := math.Min(forecastCeiling, baseline+nonModifiable*growthTwelveMonths)
	return twelve < float64(domain.HighRiskThreshold)
}

// hasModifiableFactors reports whether any symptom or lifestyle/history flag
// keeps the projection from being flat.
func hasModifiableFactors(input *domain.PatientInput, mode domain.Mode) bool {
	if input.SymptomCount(mode) > 0 {
		return true
	}
	if input.ChronicDisease || input.Pregnancy || input.FamilyHistoryAnemia {
		return true
	}
	return input.DietQuality == domain.DietPoor
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
