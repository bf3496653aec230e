// Package service implements the prediction and risk-scoring pipeline:
// feature derivation, severity classification via the model adapter, composite
// risk scoring, alert generation, risk-factor reporting, future-risk
// forecasting, recommendations and final result assembly.
package service

import (
	"github.com/hemoscan-screening-server/internal/domain"
)

// divisorEpsilon guards the derived-index ratios: a divisor at or below this
// magnitude means the raw value is missing or physiologically impossible, so
// the index is omitted rather than computed from garbage.
const divisorEpsilon = 1e-9

// DeriveFeatures computes the secondary CBC clinical indices from the raw
// panel values. It never fails: any index whose inputs are missing or whose
// divisor is near zero is left nil, never defaulted.
func DeriveFeatures(input *domain.PatientInput) domain.DerivedFeatures {
	var derived domain.DerivedFeatures

	derived.MentzerIndex = ratio(input.MCV, input.RBCCount)
	derived.HbRBCRatio = ratio(&input.Hemoglobin, input.RBCCount)
	derived.MCVMCHRatio = ratio(input.MCV, input.MCH)
	derived.HctHbRatio = ratio(input.Hematocrit, &input.Hemoglobin)

	if input.MCHC != nil && input.MCH != nil {
		diff := *input.MCHC - *input.MCH
		derived.MCHCMCHDiff = &diff
	}

	return derived
}

// BuildFeatureVector assembles the classifier input from the raw attributes
// and derived indices. Only values actually known for this request are
// included; imputation of absent columns belongs to the classifier adapter.
func BuildFeatureVector(input *domain.PatientInput, derived domain.DerivedFeatures) domain.FeatureVector {
	vector := domain.FeatureVector{
		domain.FeatureAge:            float64(input.Age),
		domain.FeatureGender:         encodeGender(input.Gender),
		domain.FeatureHemoglobin:     input.Hemoglobin,
		domain.FeatureDietQuality:    encodeDiet(input.DietQuality),
		domain.FeatureChronicDisease: encodeBool(input.ChronicDisease),
		domain.FeaturePregnancy:      encodeBool(input.Pregnancy),
		domain.FeatureFamilyHistory:  encodeBool(input.FamilyHistoryAnemia),
		domain.FeatureFatigue:        encodeBool(input.Fatigue),
		domain.FeaturePaleSkin:       encodeBool(input.PaleSkin),
		domain.FeatureShortBreath:    encodeBool(input.ShortnessOfBreath),
		domain.FeatureDizziness:      encodeBool(input.Dizziness),
		domain.FeatureColdHandsFeet:  encodeBool(input.ColdHandsFeet),
	}

	setIfPresent(vector, domain.FeatureRBCCount, input.RBCCount)
	setIfPresent(vector, domain.FeatureMCV, input.MCV)
	setIfPresent(vector, domain.FeatureMCH, input.MCH)
	setIfPresent(vector, domain.FeatureMCHC, input.MCHC)
	setIfPresent(vector, domain.FeatureHematocrit, input.Hematocrit)
	setIfPresent(vector, domain.FeatureIronLevel, input.IronLevel)
	setIfPresent(vector, domain.FeatureFerritin, input.Ferritin)
	setIfPresent(vector, domain.FeatureBMI, input.BMI)

	setIfPresent(vector, domain.FeatureMentzerIndex, derived.MentzerIndex)
	setIfPresent(vector, domain.FeatureHbRBCRatio, derived.HbRBCRatio)
	setIfPresent(vector, domain.FeatureMCVMCHRatio, derived.MCVMCHRatio)
	setIfPresent(vector, domain.FeatureMCHCMCHDiff, derived.MCHCMCHDiff)
	setIfPresent(vector, domain.FeatureHctHbRatio, derived.HctHbRatio)

	return vector
}

func ratio(numerator, denominator *float64) *float64 {
	if numerator == nil || denominator == nil {
		return nil
	}
	if *denominator <= divisorEpsilon {
		return nil
	}
	value := *numerator / *denominator
	return &value
}

func setIfPresent(vector domain.FeatureVector, name string, value *float64) {
	if value != nil {
		vector[name] = *value
	}
}

func encodeGender(g domain.Gender) float64 {
	if g == domain.GenderMale {
		return 1
	}
	return 0
}

func encodeDiet(d domain.DietQuality) float64 {
	switch d {
	case domain.DietAverage:
		return 1
	case domain.DietGood:
		return 2
	default:
		return 0
	}
}

func encodeBool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
