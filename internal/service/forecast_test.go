package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hemoscan-screening-server/internal/domain"
)

func TestForecastHealthyPatientStaysFlat(t *testing.T) {
	forecaster := NewForecaster()

	input := &domain.PatientInput{
		Age:         25,
		Gender:      domain.GenderFemale,
		Hemoglobin:  13.0,
		DietQuality: domain.DietGood,
	}
	breakdown := &ScoreBreakdown{Total: 0, Level: domain.RiskLow}

	risk := forecaster.Forecast(input, classification(domain.SeverityNormal), breakdown, domain.ModeQuick)

	assert.Equal(t, 0.0, risk.ThreeMonths)
	assert.Equal(t, 0.0, risk.SixMonths)
	assert.Equal(t, 0.0, risk.TwelveMonths)
	assert.Equal(t, domain.TrendStable, risk.Trend)
	assert.True(t, risk.Preventable)
}

func TestForecastFlatProjectionIsCapped(t *testing.T) {
	forecaster := NewForecaster()

	// Normal classification with no modifiable factors but a nonzero score,
	// e.g. from an age band.
	input := &domain.PatientInput{
		Age:         70,
		Gender:      domain.GenderFemale,
		Hemoglobin:  13.0,
		DietQuality: domain.DietAverage,
	}
	breakdown := &ScoreBreakdown{Age: 8, Total: 18, Level: domain.RiskLow}

	risk := forecaster.Forecast(input, classification(domain.SeverityNormal), breakdown, domain.ModeQuick)

	assert.Equal(t, 15.0, risk.ThreeMonths)
	assert.Equal(t, 15.0, risk.TwelveMonths)
	assert.Equal(t, domain.TrendStable, risk.Trend)
}

func TestForecastGrowthCurve(t *testing.T) {
	forecaster := NewForecaster()

	input := &domain.PatientInput{
		Age:         28,
		Gender:      domain.GenderFemale,
		Hemoglobin:  5.8,
		DietQuality: domain.DietPoor,
		Pregnancy:   true,
		Fatigue:     true,
		PaleSkin:    true,
		Dizziness:   true,
	}
	breakdown := &ScoreBreakdown{
		Severity: 40, Deficit: 20, Symptoms: 15, History: 10,
		Total: 85, Level: domain.RiskCritical,
	}

	risk := forecaster.Forecast(input, classification(domain.SeveritySevere), breakdown, domain.ModeQuick)

	// Unresolved weight is the symptom and history buckets: 25 points.
	assert.Equal(t, 90.0, risk.ThreeMonths)
	assert.Equal(t, 93.8, risk.SixMonths)
	assert.Equal(t, 95.0, risk.TwelveMonths, "projections cap at the ceiling")
	assert.Equal(t, domain.TrendIncreasing, risk.Trend)
	assert.False(t, risk.Preventable)
}

func TestForecastHorizonsNonDecreasing(t *testing.T) {
	forecaster := NewForecaster()

	inputs := []*domain.PatientInput{
		{Age: 40, Gender: domain.GenderFemale, Hemoglobin: 11.0, DietQuality: domain.DietAverage, Fatigue: true},
		{Age: 8, Gender: domain.GenderMale, Hemoglobin: 9.0, DietQuality: domain.DietPoor, ChronicDisease: true},
		{Age: 67, Gender: domain.GenderFemale, Hemoglobin: 7.5, DietQuality: domain.DietPoor, Fatigue: true, PaleSkin: true, Dizziness: true},
	}
	breakdowns := []*ScoreBreakdown{
		{Symptoms: 5, History: 2, Total: 20},
		{Severity: 27, History: 10, Total: 45},
		{Severity: 40, Deficit: 15, Age: 8, Symptoms: 15, History: 5, Total: 83},
	}

	for i, input := range inputs {
		risk := forecaster.Forecast(input, classification(domain.SeverityMild), breakdowns[i], domain.ModeQuick)

		assert.GreaterOrEqual(t, risk.SixMonths, risk.ThreeMonths, "case %d", i)
		assert.GreaterOrEqual(t, risk.TwelveMonths, risk.SixMonths, "case %d", i)
		assert.LessOrEqual(t, risk.TwelveMonths, 95.0, "case %d", i)
	}
}

func TestForecastPreventable(t *testing.T) {
	forecaster := NewForecaster()

	// Modifiable factors only: the twelve-month projection without them stays
	// under the high-risk threshold.
	modifiable := &domain.PatientInput{
		Age:         30,
		Gender:      domain.GenderFemale,
		Hemoglobin:  10.5,
		DietQuality: domain.DietPoor,
		Fatigue:     true,
	}
	breakdown := &ScoreBreakdown{Deficit: 5, Symptoms: 5, History: 5, Total: 28}

	risk := forecaster.Forecast(modifiable, classification(domain.SeverityMild), breakdown, domain.ModeQuick)
	assert.True(t, risk.Preventable)

	// Chronic disease keeps projecting forward, tipping the same score over
	// the threshold.
	chronic := &domain.PatientInput{
		Age:                 30,
		Gender:              domain.GenderFemale,
		Hemoglobin:          10.5,
		DietQuality:         domain.DietPoor,
		ChronicDisease:      true,
		Pregnancy:           true,
		FamilyHistoryAnemia: true,
	}
	highBreakdown := &ScoreBreakdown{Deficit: 5, History: 15, Total: 38}

	risk = forecaster.Forecast(chronic, classification(domain.SeverityMild), highBreakdown, domain.ModeQuick)
	assert.False(t, risk.Preventable)
}
