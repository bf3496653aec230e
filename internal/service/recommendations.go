package service

import (
	"fmt"

	"github.com/hemoscan-screening-server/internal/domain"
)

// RecommendationBuilder turns the deficiency signals of a completed prediction
// into actionable suggestions for the patient-facing report.
type RecommendationBuilder struct{}

// NewRecommendationBuilder creates a recommendation builder.
func NewRecommendationBuilder() *RecommendationBuilder {
	return &RecommendationBuilder{}
}

// Build produces the recommendation list for one prediction.
func (b *RecommendationBuilder) Build(input *domain.PatientInput, classification *domain.ClassificationResult, riskScore int) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0)

	if classification.Severity == domain.SeverityNormal && riskScore < 20 {
		return append(recs, domain.Recommendation{
			Icon:  "✅",
			Title: "Healthy Status",
			Text:  "Your blood parameters are within normal range. Continue maintaining a balanced diet rich in iron and vitamins.",
		})
	}

	if input.DietQuality != domain.DietGood {
		recs = append(recs, domain.Recommendation{
			Icon:  "🥗",
			Title: "Improve Dietary Iron Intake",
			Text:  "Include iron-rich foods: spinach, lentils, red meat, fortified cereals, beans, and dark chocolate. Pair with Vitamin C sources for better absorption.",
		})
	}

	switch {
	case input.Hemoglobin < 10:
		recs = append(recs, domain.Recommendation{
			Icon:  "🏥",
			Title: "Seek Immediate Medical Attention",
			Text:  fmt.Sprintf("Your hemoglobin level (%.1f g/dL) is critically low. Please consult a hematologist immediately for proper treatment.", input.Hemoglobin),
		})
	case input.Hemoglobin < 12:
		recs = append(recs, domain.Recommendation{
			Icon:  "👨‍⚕️",
			Title: "Medical Consultation Recommended",
			Text:  fmt.Sprintf("Your hemoglobin (%.1f g/dL) is below optimal. Schedule a visit with your healthcare provider for a complete blood panel.", input.Hemoglobin),
		})
	}

	if lowIronStores(input) {
		recs = append(recs, domain.Recommendation{
			Icon:  "💊",
			Title: "Consider Iron Supplementation",
			Text:  "Your iron stores appear low. Consult your doctor about iron supplements. Take them with Vitamin C on an empty stomach for best absorption.",
		})
	}

	if input.Pregnancy {
		recs = append(recs, domain.Recommendation{
			Icon:  "🤰",
			Title: "Prenatal Anemia Management",
			Text:  "Anemia during pregnancy requires careful monitoring. Ensure regular prenatal checkups and consider folic acid and iron supplementation as advised by your OB-GYN.",
		})
	}

	if input.Fatigue || input.Dizziness || input.ShortnessOfBreath {
		recs = append(recs, domain.Recommendation{
			Icon:  "🏃",
			Title: "Manage Symptoms",
			Text:  "Rest when fatigued, stay hydrated, avoid sudden position changes, and engage in light physical activity. Avoid strenuous exercise until hemoglobin levels improve.",
		})
	}

	if classification.Severity != domain.SeverityNormal {
		recs = append(recs, domain.Recommendation{
			Icon:  "📅",
			Title: "Schedule Follow-Up Testing",
			Text:  fmt.Sprintf("Recommended re-testing in %s. Track hemoglobin trends over time.", followUpInterval(classification.Severity)),
		})
	}

	return recs
}

func lowIronStores(input *domain.PatientInput) bool {
	if input.IronLevel != nil && *input.IronLevel < ironRange.Low {
		return true
	}
	return input.Ferritin != nil && *input.Ferritin < 30
}

func followUpInterval(severity domain.Severity) string {
	switch severity {
	case domain.SeveritySevere:
		return "2 weeks"
	case domain.SeverityModerate:
		return "1 month"
	default:
		return "3 months"
	}
}
