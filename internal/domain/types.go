// Package domain contains core business entities and types for anemia severity
// screening and risk scoring. Severity classes, risk levels and reference ranges
// follow standard hematology screening practice (WHO hemoglobin cutoffs for
// anemia severity grading).
package domain

// Severity represents the predicted anemia severity class.
type Severity string

const (
	SeverityNormal   Severity = "Normal"
	SeverityMild     Severity = "Mild Anemia"
	SeverityModerate Severity = "Moderate Anemia"
	SeveritySevere   Severity = "Severe Anemia"
)

// SeverityLabels lists the four severity classes in ordinal order. The
// classifier's probability distribution is defined over exactly this set.
var SeverityLabels = []Severity{SeverityNormal, SeverityMild, SeverityModerate, SeveritySevere}

// IsValid validates that the severity is one of the four known classes.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityNormal, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity class.
func (s Severity) String() string {
	return string(s)
}

// Ordinal returns the ordinal rank of the severity class (Normal=0 .. Severe=3).
// Returns -1 for an unknown class.
func (s Severity) Ordinal() int {
	for i, label := range SeverityLabels {
		if s == label {
			return i
		}
	}
	return -1
}

// Gender represents the patient's gender as used for gender-adjusted
// hematology reference ranges.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// IsValid validates the gender value.
func (g Gender) IsValid() bool {
	return g == GenderFemale || g == GenderMale
}

// String returns the string representation of the gender.
func (g Gender) String() string {
	return string(g)
}

// DietQuality represents the self-reported diet quality level.
type DietQuality string

const (
	DietPoor    DietQuality = "Poor"
	DietAverage DietQuality = "Average"
	DietGood    DietQuality = "Good"
)

// IsValid validates the diet quality value.
func (d DietQuality) IsValid() bool {
	switch d {
	case DietPoor, DietAverage, DietGood:
		return true
	default:
		return false
	}
}

// String returns the string representation of the diet quality.
func (d DietQuality) String() string {
	return string(d)
}

// RiskLevel represents the discrete risk category derived from the 0-100
// composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
	RiskCritical RiskLevel = "Critical"
)

// HighRiskThreshold is the score at which the High risk bucket begins. The
// future-risk forecaster uses it to decide whether a projection is preventable.
const HighRiskThreshold = 40

// RiskLevelForScore maps a clamped 0-100 risk score onto its risk level.
// Buckets are inclusive on the lower bound, exclusive on the upper:
// Low <20, Moderate 20-39, High 40-59, Very High 60-79, Critical 80+.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score < 20:
		return RiskLow
	case score < 40:
		return RiskModerate
	case score < 60:
		return RiskHigh
	case score < 80:
		return RiskVeryHigh
	default:
		return RiskCritical
	}
}

// IsValid validates the risk level value.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh, RiskVeryHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// AlertLevel represents the severity of a generated alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// IsValid validates the alert level value.
func (a AlertLevel) IsValid() bool {
	switch a {
	case AlertInfo, AlertWarning, AlertCritical:
		return true
	default:
		return false
	}
}

// Rank returns the sort rank of the alert level, higher is more severe.
func (a AlertLevel) Rank() int {
	switch a {
	case AlertCritical:
		return 3
	case AlertWarning:
		return 2
	case AlertInfo:
		return 1
	default:
		return 0
	}
}

// FactorStatus tags a measured parameter against its reference range.
type FactorStatus string

const (
	StatusLow    FactorStatus = "low"
	StatusNormal FactorStatus = "normal"
	StatusHigh   FactorStatus = "high"
)

// Trend represents the direction of the future-risk projection.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
)

// Mode selects the input-completeness level of a prediction request.
type Mode string

const (
	// ModeFull requires the complete blood panel alongside symptoms and history.
	ModeFull Mode = "full"
	// ModeQuick accepts the reduced screening subset: age, gender, hemoglobin,
	// fatigue, pale skin, dizziness, diet quality and pregnancy.
	ModeQuick Mode = "quick"
)

// IsValid validates the request mode.
func (m Mode) IsValid() bool {
	return m == ModeFull || m == ModeQuick
}

// SymptomsTracked returns how many symptom flags the mode tracks. The
// per-symptom score weight is the symptom budget divided by this count, so the
// weight stays consistent across requests of the same mode.
func (m Mode) SymptomsTracked() int {
	if m == ModeQuick {
		return 3
	}
	return 5
}
