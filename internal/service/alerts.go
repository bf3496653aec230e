package service

import (
	"fmt"
	"sort"

	"github.com/hemoscan-screening-server/internal/domain"
)

// criticalHbFloor is the hemoglobin level below which transfusion is usually
// considered.
const criticalHbFloor = 7.0

// alertContext is the evaluated state every alert rule sees.
type alertContext struct {
	input          *domain.PatientInput
	classification *domain.ClassificationResult
	riskScore      int
}

// alertRule is one independently evaluable threshold rule. Rules never
// suppress each other; declaration order breaks ties within an alert level.
type alertRule struct {
	name      string
	level     domain.AlertLevel
	predicate func(ctx *alertContext) bool
	message   func(ctx *alertContext) string
	action    string
}

// alertRules is the static ordered rule table.
var alertRules = []alertRule{
	{
		name:  "hemoglobin_critical",
		level: domain.AlertCritical,
		predicate: func(ctx *alertContext) bool {
			return ctx.input.Hemoglobin < criticalHbFloor
		},
		message: func(ctx *alertContext) string {
			return fmt.Sprintf("Hemoglobin critically low (%.1f g/dL). Blood transfusion may be required.", ctx.input.Hemoglobin)
		},
		action: "Emergency department referral",
	},
	{
		name:  "severe_anemia",
		level: domain.AlertCritical,
		predicate: func(ctx *alertContext) bool {
			return ctx.classification.Severity == domain.SeveritySevere
		},
		message: func(ctx *alertContext) string {
			return "Severe anemia detected. Immediate medical intervention recommended."
		},
		action: "Refer to hematologist immediately",
	},
	{
		name:  "pregnancy_anemia",
		level: domain.AlertCritical,
		predicate: func(ctx *alertContext) bool {
			return ctx.input.Pregnancy && ctx.classification.Severity.Ordinal() >= domain.SeverityModerate.Ordinal()
		},
		message: func(ctx *alertContext) string {
			return "Moderate-to-severe anemia during pregnancy. Close monitoring required."
		},
		action: "Refer to high-risk obstetrics",
	},
	{
		name:  "high_composite_risk",
		level: domain.AlertWarning,
		predicate: func(ctx *alertContext) bool {
			return ctx.riskScore >= 80
		},
		message: func(ctx *alertContext) string {
			return "Multiple risk factors identified. Comprehensive evaluation needed."
		},
		action: "Complete blood count and iron studies recommended",
	},
	{
		name:  "ferritin_depleted",
		level: domain.AlertWarning,
		predicate: func(ctx *alertContext) bool {
			if ctx.input.Ferritin == nil || *ctx.input.Ferritin >= ferritinRange.Low {
				return false
			}
			ordinal := ctx.classification.Severity.Ordinal()
			return ordinal == domain.SeverityMild.Ordinal() || ordinal == domain.SeverityModerate.Ordinal()
		},
		message: func(ctx *alertContext) string {
			return fmt.Sprintf("Ferritin below reference range (%.0f ng/mL) with active anemia.", *ctx.input.Ferritin)
		},
		action: "Consider iron supplementation under medical guidance",
	},
	{
		name:  "iron_low",
		level: domain.AlertInfo,
		predicate: func(ctx *alertContext) bool {
			return ctx.input.IronLevel != nil && *ctx.input.IronLevel < ironRange.Low &&
				ctx.classification.Severity != domain.SeverityNormal
		},
		message: func(ctx *alertContext) string {
			return fmt.Sprintf("Serum iron below reference range (%.0f µg/dL).", *ctx.input.IronLevel)
		},
		action: "Iron studies recommended at next follow-up",
	},
}

// AlertGenerator evaluates the rule table over raw and derived values.
type AlertGenerator struct{}

// NewAlertGenerator creates an alert generator.
func NewAlertGenerator() *AlertGenerator {
	return &AlertGenerator{}
}

// Generate evaluates every rule in one pass and returns the fired alerts
// ordered by descending level, then rule declaration order. An empty list is a
// valid, common result.
func (g *AlertGenerator) Generate(input *domain.PatientInput, classification *domain.ClassificationResult, riskScore int) []domain.Alert {
	ctx := &alertContext{
		input:          input,
		classification: classification,
		riskScore:      riskScore,
	}

	alerts := make([]domain.Alert, 0)
	for _, rule := range alertRules {
		if !rule.predicate(ctx) {
			continue
		}
		alerts = append(alerts, domain.Alert{
			Level:   rule.level,
			Message: rule.message(ctx),
			Action:  rule.action,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Level.Rank() > alerts[j].Level.Rank()
	})

	return alerts
}
