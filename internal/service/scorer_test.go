package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemoscan-screening-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func floatPtr(v float64) *float64 {
	return &v
}

func classification(severity domain.Severity) *domain.ClassificationResult {
	return &domain.ClassificationResult{
		Severity:      severity,
		Probabilities: map[domain.Severity]float64{severity: 90},
		Confidence:    90,
		ModelAccuracy: 95,
	}
}

func TestScoreHealthyAdult(t *testing.T) {
	scorer := NewRiskScorer(testLogger())

	input := &domain.PatientInput{
		Age:         25,
		Gender:      domain.GenderFemale,
		Hemoglobin:  13.0,
		DietQuality: domain.DietGood,
	}

	breakdown, err := scorer.Score(input, classification(domain.SeverityNormal), domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 0, breakdown.Total)
	assert.Equal(t, domain.RiskLow, breakdown.Level)
	assert.Zero(t, breakdown.Severity)
	assert.Zero(t, breakdown.Deficit)
	assert.Zero(t, breakdown.Age)
	assert.Zero(t, breakdown.Symptoms)
	assert.Zero(t, breakdown.History)
}

func TestScoreSeverePregnantQuick(t *testing.T) {
	scorer := NewRiskScorer(testLogger())

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

	breakdown, err := scorer.Score(input, classification(domain.SeveritySevere), domain.ModeQuick)
	require.NoError(t, err)

	assert.Equal(t, 40.0, breakdown.Severity)
	assert.Equal(t, 20.0, breakdown.Deficit, "deficit bucket must clamp at its budget")
	assert.Equal(t, 0.0, breakdown.Age)
	assert.Equal(t, 15.0, breakdown.Symptoms)
	assert.Equal(t, 10.0, breakdown.History)
	assert.Equal(t, 85, breakdown.Total)
	assert.Equal(t, domain.RiskCritical, breakdown.Level)
}

func TestScoreNeverExceedsBudget(t *testing.T) {
	scorer := NewRiskScorer(testLogger())

	// Worst plausible male input: every bucket maxed out.
	input := &domain.PatientInput{
		Age:                 70,
		Gender:              domain.GenderMale,
		Hemoglobin:          3.0,
		DietQuality:         domain.DietPoor,
		ChronicDisease:      true,
		FamilyHistoryAnemia: true,
		Fatigue:             true,
		PaleSkin:            true,
		ShortnessOfBreath:   true,
		Dizziness:           true,
		ColdHandsFeet:       true,
	}

	breakdown, err := scorer.Score(input, classification(domain.SeveritySevere), domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 98, breakdown.Total)
	assert.LessOrEqual(t, breakdown.Total, 100)
	assert.Equal(t, domain.RiskCritical, breakdown.Level)
}

func TestScoreRequiresClassification(t *testing.T) {
	scorer := NewRiskScorer(testLogger())

	breakdown, err := scorer.Score(&domain.PatientInput{}, nil, domain.ModeQuick)
	assert.Nil(t, breakdown)
	assert.Error(t, err)
}

func TestSeverityPoints(t *testing.T) {
	assert.Equal(t, 0.0, severityPoints(domain.SeverityNormal))
	assert.InDelta(t, 40.0/3, severityPoints(domain.SeverityMild), 1e-9)
	assert.InDelta(t, 80.0/3, severityPoints(domain.SeverityModerate), 1e-9)
	assert.Equal(t, 40.0, severityPoints(domain.SeveritySevere))
	assert.Equal(t, 0.0, severityPoints(domain.Severity("bogus")))
}

func TestDeficitPoints(t *testing.T) {
	// No deficit above the gender floor.
	assert.Equal(t, 0.0, deficitPoints(13.0, domain.GenderFemale))
	assert.Equal(t, 0.0, deficitPoints(13.5, domain.GenderMale))

	// The male floor is higher, so the same hemoglobin scores more for men.
	assert.Greater(t, deficitPoints(12.0, domain.GenderMale), 0.0)
	assert.Equal(t, 0.0, deficitPoints(12.0, domain.GenderFemale))

	// Linear in the relative deficit, clamped at the bucket budget.
	assert.InDelta(t, (12.0-10.0)/12.0*40, deficitPoints(10.0, domain.GenderFemale), 1e-9)
	assert.Equal(t, 20.0, deficitPoints(4.0, domain.GenderFemale))
}

func TestDeficitPointsMonotone(t *testing.T) {
	previous := deficitPoints(14.0, domain.GenderFemale)
	for hb := 13.5; hb >= 3.0; hb -= 0.5 {
		current := deficitPoints(hb, domain.GenderFemale)
		assert.GreaterOrEqual(t, current, previous, "hb=%v", hb)
		previous = current
	}
}

func TestAgePoints(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{2, 8},
		{4, 8},
		{5, 5},
		{11, 5},
		{12, 0},
		{30, 0},
		{50, 0},
		{51, 5},
		{65, 5},
		{66, 8},
		{90, 8},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, agePoints(tt.age), "age %d", tt.age)
	}
}

func TestSymptomPointsModeConsistency(t *testing.T) {
	// One quick-mode symptom is worth 15/3 points, one full-mode symptom 15/5.
	quickOne := &domain.PatientInput{Fatigue: true}
	assert.Equal(t, 5.0, symptomPoints(quickOne, domain.ModeQuick))
	assert.Equal(t, 3.0, symptomPoints(quickOne, domain.ModeFull))

	// All tracked symptoms exhaust the bucket in either mode.
	all := &domain.PatientInput{
		Fatigue: true, PaleSkin: true, Dizziness: true,
		ShortnessOfBreath: true, ColdHandsFeet: true,
	}
	assert.Equal(t, 15.0, symptomPoints(all, domain.ModeQuick))
	assert.Equal(t, 15.0, symptomPoints(all, domain.ModeFull))
}

func TestHistoryPoints(t *testing.T) {
	assert.Equal(t, 0.0, historyPoints(&domain.PatientInput{DietQuality: domain.DietGood}),
		"good diet can never push the bucket negative")

	assert.Equal(t, 2.0, historyPoints(&domain.PatientInput{DietQuality: domain.DietAverage}))
	assert.Equal(t, 5.0, historyPoints(&domain.PatientInput{DietQuality: domain.DietPoor}))

	assert.Equal(t, 3.0, historyPoints(&domain.PatientInput{
		ChronicDisease: true,
		DietQuality:    domain.DietGood,
	}))

	// Every flag plus a poor diet clamps at the bucket budget.
	assert.Equal(t, 15.0, historyPoints(&domain.PatientInput{
		ChronicDisease:      true,
		Pregnancy:           true,
		FamilyHistoryAnemia: true,
		DietQuality:         domain.DietPoor,
	}))
}

func TestScoreMonotoneInSeverity(t *testing.T) {
	scorer := NewRiskScorer(testLogger())
	input := &domain.PatientInput{
		Age:         40,
		Gender:      domain.GenderFemale,
		Hemoglobin:  10.0,
		DietQuality: domain.DietAverage,
	}

	previous := -1
	for _, severity := range domain.SeverityLabels {
		breakdown, err := scorer.Score(input, classification(severity), domain.ModeQuick)
		require.NoError(t, err)
		assert.Greater(t, breakdown.Total, previous, "severity %s", severity)
		previous = breakdown.Total
	}
}
