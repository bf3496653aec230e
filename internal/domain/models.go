package domain

import "time"

// Feature names used in the classifier feature vector. Raw patient attributes
// first, derived CBC indices last; the artifact decides the actual column order.
const (
	FeatureAge            = "age"
	FeatureGender         = "gender"
	FeatureHemoglobin     = "hemoglobin"
	FeatureRBCCount       = "rbc_count"
	FeatureMCV            = "mcv"
	FeatureMCH            = "mch"
	FeatureMCHC           = "mchc"
	FeatureHematocrit     = "hematocrit"
	FeatureIronLevel      = "iron_level"
	FeatureFerritin       = "ferritin"
	FeatureDietQuality    = "diet_quality"
	FeatureChronicDisease = "chronic_disease"
	FeaturePregnancy      = "pregnancy"
	FeatureFamilyHistory  = "family_history_anemia"
	FeatureFatigue        = "fatigue"
	FeaturePaleSkin       = "pale_skin"
	FeatureShortBreath    = "shortness_of_breath"
	FeatureDizziness      = "dizziness"
	FeatureColdHandsFeet  = "cold_hands_feet"
	FeatureBMI            = "bmi"
	FeatureMentzerIndex   = "mentzer_index"
	FeatureHbRBCRatio     = "hb_rbc_ratio"
	FeatureMCVMCHRatio    = "mcv_mch_ratio"
	FeatureMCHCMCHDiff    = "mchc_mch_diff"
	FeatureHctHbRatio     = "hct_hb_ratio"
)

// PatientInput holds the raw patient attributes for one prediction request.
// Panel measurements are pointers so quick-mode requests can omit them; an
// absent value is treated as unknown and never defaulted to a clinical normal.
type PatientInput struct {
	Age        int     `json:"age"`
	Gender     Gender  `json:"gender"`
	Hemoglobin float64 `json:"hemoglobin"`

	// Full blood panel, optional in quick mode.
	RBCCount   *float64 `json:"rbc_count,omitempty"`
	MCV        *float64 `json:"mcv,omitempty"`
	MCH        *float64 `json:"mch,omitempty"`
	MCHC       *float64 `json:"mchc,omitempty"`
	Hematocrit *float64 `json:"hematocrit,omitempty"`
	IronLevel  *float64 `json:"iron_level,omitempty"`
	Ferritin   *float64 `json:"ferritin,omitempty"`
	BMI        *float64 `json:"bmi,omitempty"`

	// Symptom flags. Quick mode tracks fatigue, pale skin and dizziness only.
	Fatigue           bool `json:"fatigue"`
	PaleSkin          bool `json:"pale_skin"`
	ShortnessOfBreath bool `json:"shortness_of_breath"`
	Dizziness         bool `json:"dizziness"`
	ColdHandsFeet     bool `json:"cold_hands_feet"`

	DietQuality DietQuality `json:"diet_quality"`

	// Medical history flags.
	ChronicDisease      bool `json:"chronic_disease"`
	Pregnancy           bool `json:"pregnancy"`
	FamilyHistoryAnemia bool `json:"family_history_anemia"`
}

// SymptomCount returns the number of present symptoms among those tracked by
// the given mode.
func (p *PatientInput) SymptomCount(mode Mode) int {
	count := 0
	for _, present := range []bool{p.Fatigue, p.PaleSkin, p.Dizziness} {
		if present {
			count++
		}
	}
	if mode == ModeFull {
		for _, present := range []bool{p.ShortnessOfBreath, p.ColdHandsFeet} {
			if present {
				count++
			}
		}
	}
	return count
}

// DerivedFeatures holds the secondary CBC clinical indices. Each index is
// independently nullable: it is computed only when every constituent raw value
// is present and the divisor is not near zero.
type DerivedFeatures struct {
	MentzerIndex *float64 `json:"mentzer_index,omitempty"` // MCV / RBC
	HbRBCRatio   *float64 `json:"hb_rbc_ratio,omitempty"`  // Hemoglobin / RBC
	MCVMCHRatio  *float64 `json:"mcv_mch_ratio,omitempty"` // MCV / MCH
	MCHCMCHDiff  *float64 `json:"mchc_mch_diff,omitempty"` // MCHC - MCH
	HctHbRatio   *float64 `json:"hct_hb_ratio,omitempty"`  // Hematocrit / Hemoglobin
}

// FeatureVector maps feature names to values. Only features actually known for
// the request are present; imputation of missing columns is the classifier
// adapter's internal policy.
type FeatureVector map[string]float64

// ClassificationResult is the output of the classifier adapter: the chosen
// severity class, a full four-class probability distribution in percent
// (sums to 100 within rounding tolerance), the confidence (probability mass of
// the chosen class) and the static model accuracy from the artifact metadata.
type ClassificationResult struct {
	Severity      Severity             `json:"severity_label"`
	Probabilities map[Severity]float64 `json:"probabilities"`
	Confidence    float64              `json:"confidence"`
	ModelAccuracy float64              `json:"model_accuracy"`
}

// Alert is a threshold-triggered clinical alert.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
	Action  string     `json:"action,omitempty"`
}

// RiskFactor reports one measured parameter against its reference range.
type RiskFactor struct {
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	NormalRange string       `json:"normal_range"`
	Status      FactorStatus `json:"status"`
}

// FutureRisk projects the risk trajectory at the three fixed horizons. The
// horizon values are monotonically non-decreasing percentages.
type FutureRisk struct {
	ThreeMonths  float64 `json:"3_months"`
	SixMonths    float64 `json:"6_months"`
	TwelveMonths float64 `json:"12_months"`
	Trend        Trend   `json:"trend"`
	Preventable  bool    `json:"preventable"`
}

// Recommendation is one actionable suggestion produced from the deficiency
// signals of a completed prediction.
type Recommendation struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// PredictionResponse is the assembled result of one prediction request.
type PredictionResponse struct {
	SeverityLabel   string               `json:"severity_label"`
	Probabilities   map[Severity]float64 `json:"probabilities"`
	Confidence      float64              `json:"confidence"`
	ModelAccuracy   float64              `json:"model_accuracy"`
	RiskScore       int                  `json:"risk_score"`
	RiskLevel       RiskLevel            `json:"risk_level"`
	Alerts          []Alert              `json:"alerts"`
	RiskFactors     []RiskFactor         `json:"risk_factors"`
	FutureRisk      FutureRisk           `json:"future_risk"`
	Recommendations []Recommendation     `json:"recommendations"`
}

// PredictionRecord is the audit summary persisted for one completed
// prediction. It intentionally carries no identifying patient record beyond
// the inputs needed for screening statistics.
type PredictionRecord struct {
	ID            int64     `json:"id"`
	RequestID     string    `json:"request_id"`
	Mode          Mode      `json:"mode"`
	Age           int       `json:"age"`
	Gender        Gender    `json:"gender"`
	Hemoglobin    float64   `json:"hemoglobin"`
	SeverityLabel Severity  `json:"severity_label"`
	Confidence    float64   `json:"confidence"`
	RiskScore     int       `json:"risk_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
	AlertCount    int       `json:"alert_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ModelInfo describes the loaded classifier artifact.
type ModelInfo struct {
	ModelName         string             `json:"model_name"`
	Accuracy          float64            `json:"accuracy"`
	CVScore           float64            `json:"cv_score"`
	Features          []string           `json:"features"`
	TrainingSamples   int                `json:"training_samples"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}
