package domain

import "fmt"

// panelField pairs a required full-mode panel measurement with its input slot.
type panelField struct {
	name  string
	value func(*PatientInput) *float64
}

var fullModePanel = []panelField{
	{FeatureRBCCount, func(p *PatientInput) *float64 { return p.RBCCount }},
	{FeatureMCV, func(p *PatientInput) *float64 { return p.MCV }},
	{FeatureMCH, func(p *PatientInput) *float64 { return p.MCH }},
	{FeatureMCHC, func(p *PatientInput) *float64 { return p.MCHC }},
	{FeatureHematocrit, func(p *PatientInput) *float64 { return p.Hematocrit }},
	{FeatureIronLevel, func(p *PatientInput) *float64 { return p.IronLevel }},
	{FeatureFerritin, func(p *PatientInput) *float64 { return p.Ferritin }},
	{FeatureBMI, func(p *PatientInput) *float64 { return p.BMI }},
}

// Validate checks the input against the requirements of the selected mode and
// returns every offending field. A nil result means the input is acceptable
// for classification. Missing panel fields are an error only in full mode; in
// quick mode they stay unknown and are excluded downstream.
func (p *PatientInput) Validate(mode Mode) ValidationErrors {
	var errs ValidationErrors

	if !mode.IsValid() {
		errs = append(errs, NewValidationError("mode", "must be \"full\" or \"quick\"", string(mode)))
	}

	if p.Age < 1 || p.Age > 120 {
		errs = append(errs, NewValidationError(FeatureAge, "must be between 1 and 120", p.Age))
	}
	if !p.Gender.IsValid() {
		errs = append(errs, NewValidationError(FeatureGender, "must be \"Female\" or \"Male\"", string(p.Gender)))
	}
	if p.Hemoglobin <= 0 || p.Hemoglobin > 25 {
		errs = append(errs, NewValidationError(FeatureHemoglobin, "must be a positive g/dL value below 25", p.Hemoglobin))
	}
	if !p.DietQuality.IsValid() {
		errs = append(errs, NewValidationError(FeatureDietQuality, "must be \"Poor\", \"Average\" or \"Good\"", string(p.DietQuality)))
	}
	if p.Pregnancy && p.Gender == GenderMale {
		errs = append(errs, NewValidationError(FeaturePregnancy, "only applicable when gender is Female", p.Pregnancy))
	}

	if mode == ModeFull {
		for _, field := range fullModePanel {
			v := field.value(p)
			if v == nil {
				errs = append(errs, NewValidationError(field.name, "required in full mode", nil))
				continue
			}
			if *v < 0 {
				errs = append(errs, NewValidationError(field.name, fmt.Sprintf("must not be negative, got %v", *v), *v))
			}
		}
	}

	return errs
}
