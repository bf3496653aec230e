package service

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hemoscan-screening-server/internal/domain"
)

// Point budget for the composite risk score. The buckets sum to exactly 100;
// every bucket clamps independently so the pre-clamp total can only exceed 100
// through a programming defect.
const (
	severityBudget = 40.0
	deficitBudget  = 20.0
	ageBudget      = 10.0
	symptomBudget  = 15.0
	historyBudget  = 15.0

	// Hemoglobin deficit points scale at this multiple of the relative deficit
	// against the gender-adjusted floor, then clamp at deficitBudget.
	deficitSlope = 40.0

	normalHbMale   = 13.5
	normalHbFemale = 12.0
)

// RiskScorer combines the classification output and raw attributes into a
// single 0-100 score and discrete risk level.
type RiskScorer struct {
	logger *logrus.Logger
}

// NewRiskScorer creates a risk scorer.
func NewRiskScorer(logger *logrus.Logger) *RiskScorer {
	return &RiskScorer{logger: logger}
}

// ScoreBreakdown carries the per-bucket contributions alongside the total.
// The forecaster consumes the symptom and history buckets as the unresolved
// modifiable weight.
type ScoreBreakdown struct {
	Severity float64
	Deficit  float64
	Age      float64
	Symptoms float64
	History  float64
	Total    int
	Level    domain.RiskLevel
}

// Score produces the composite risk score. It fails only when the
// classification result is absent.
func (s *RiskScorer) Score(input *domain.PatientInput, classification *domain.ClassificationResult, mode domain.Mode) (*ScoreBreakdown, error) {
	if classification == nil {
		return nil, fmt.Errorf("classification result is required for risk scoring")
	}

	breakdown := &ScoreBreakdown{
		Severity: severityPoints(classification.Severity),
		Deficit:  deficitPoints(input.Hemoglobin, input.Gender),
		Age:      agePoints(input.Age),
		Symptoms: symptomPoints(input, mode),
		History:  historyPoints(input),
	}

	raw := breakdown.Severity + breakdown.Deficit + breakdown.Age + breakdown.Symptoms + breakdown.History
	if raw > 100+1e-6 {
		// Bucket clamps make this unreachable; clamp defensively and surface
		// the invariant violation loudly so tests catch the defect.
		s.logger.WithFields(logrus.Fields{
			"raw_score": raw,
			"severity":  classification.Severity.String(),
		}).Error("Risk score exceeded point budget before clamping")
	}

	breakdown.Total = clampScore(int(math.Round(raw)))
	breakdown.Level = domain.RiskLevelForScore(breakdown.Total)
	return breakdown, nil
}

// severityPoints scales the predicted class onto the 0-40 severity budget:
// one third of the budget per ordinal step.
func severityPoints(severity domain.Severity) float64 {
	ordinal := severity.Ordinal()
	if ordinal < 0 {
		ordinal = 0
	}
	return float64(ordinal) * severityBudget / 3.0
}

// deficitPoints scores the hemoglobin shortfall against the gender-adjusted
// normal floor, scaling linearly and clamping at the bucket budget.
func deficitPoints(hemoglobin float64, gender domain.Gender) float64 {
	floor := normalHbFemale
	if gender == domain.GenderMale {
		floor = normalHbMale
	}
	deficit := floor - hemoglobin
	if deficit <= 0 {
		return 0
	}
	return math.Min(deficitBudget, deficit/floor*deficitSlope)
}

// agePoints applies the nonlinear age bands: very young and elderly patients
// carry most of the budget, adjacent bands half of it.
func agePoints(age int) float64 {
	switch {
	case age < 5 || age > 65:
		return 8
	case age < 12 || age > 50:
		return 5
	default:
		return 0
	}
}

// symptomPoints gives each present symptom a fixed share of the symptom
// budget. The share depends only on how many symptoms the mode tracks, never
// on how many are present, so quick and full requests stay comparable.
func symptomPoints(input *domain.PatientInput, mode domain.Mode) float64 {
	weight := symptomBudget / float64(mode.SymptomsTracked())
	points := float64(input.SymptomCount(mode)) * weight
	return math.Min(symptomBudget, points)
}

// historyPoints scores medical history and lifestyle. Good diet quality
// subtracts from this bucket but can never push it negative.
func historyPoints(input *domain.PatientInput) float64 {
	points := 0.0
	if input.ChronicDisease {
		points += 5
	}
	if input.Pregnancy {
		points += 5
	}
	if input.FamilyHistoryAnemia {
		points += 5
	}
	switch input.DietQuality {
	case domain.DietPoor:
		points += 5
	case domain.DietAverage:
		points += 2
	case domain.DietGood:
		points -= 2
	}
	return math.Min(historyBudget, math.Max(0, points))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
