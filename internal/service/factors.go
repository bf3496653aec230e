package service

import (
	"fmt"
	"strconv"

	"github.com/hemoscan-screening-server/internal/domain"
)

// referenceRange is a fixed low/high reference band for one parameter.
type referenceRange struct {
	Low  float64
	High float64
}

// Reference ranges shown to the user. Gender-adjusted parameters carry two
// bands and select by the request's gender.
var (
	hemoglobinRangeMale   = referenceRange{13.5, 17.5} // g/dL
	hemoglobinRangeFemale = referenceRange{12.0, 16.0}
	rbcRangeMale          = referenceRange{4.5, 5.5} // M/µL
	rbcRangeFemale        = referenceRange{4.0, 5.0}
	mcvRange              = referenceRange{80, 100} // fL
	mchRange              = referenceRange{27, 33}  // pg
	mchcRange             = referenceRange{32, 36}  // g/dL
	hematocritRangeMale   = referenceRange{41, 50} // %
	hematocritRangeFemale = referenceRange{36, 44}
	ironRange             = referenceRange{60, 170} // µg/dL
	ferritinRange         = referenceRange{20, 250} // ng/mL
	bmiRange              = referenceRange{18.5, 24.9}
)

func (r referenceRange) status(value float64) domain.FactorStatus {
	switch {
	case value < r.Low:
		return domain.StatusLow
	case value > r.High:
		return domain.StatusHigh
	default:
		return domain.StatusNormal
	}
}

func (r referenceRange) display(unit string) string {
	if unit == "" {
		return fmt.Sprintf("%s-%s", trimFloat(r.Low), trimFloat(r.High))
	}
	return fmt.Sprintf("%s-%s %s", trimFloat(r.Low), trimFloat(r.High), unit)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RiskFactorReporter classifies each measured parameter against its fixed
// reference range for display.
type RiskFactorReporter struct{}

// NewRiskFactorReporter creates a risk factor reporter.
func NewRiskFactorReporter() *RiskFactorReporter {
	return &RiskFactorReporter{}
}

// Report compares every parameter present in the input against its reference
// range. Parameters absent from the input are omitted, never fabricated.
func (r *RiskFactorReporter) Report(input *domain.PatientInput) []domain.RiskFactor {
	male := input.Gender == domain.GenderMale

	hbRange := hemoglobinRangeFemale
	rbcRange := rbcRangeFemale
	hctRange := hematocritRangeFemale
	if male {
		hbRange = hemoglobinRangeMale
		rbcRange = rbcRangeMale
		hctRange = hematocritRangeMale
	}

	factors := []domain.RiskFactor{
		factor("Hemoglobin", input.Hemoglobin, "g/dL", hbRange),
	}
	factors = appendIfPresent(factors, "RBC Count", input.RBCCount, "M/µL", rbcRange)
	factors = appendIfPresent(factors, "MCV", input.MCV, "fL", mcvRange)
	factors = appendIfPresent(factors, "MCH", input.MCH, "pg", mchRange)
	factors = appendIfPresent(factors, "MCHC", input.MCHC, "g/dL", mchcRange)
	factors = appendIfPresent(factors, "Hematocrit", input.Hematocrit, "%", hctRange)
	factors = appendIfPresent(factors, "Iron Level", input.IronLevel, "µg/dL", ironRange)
	factors = appendIfPresent(factors, "Ferritin", input.Ferritin, "ng/mL", ferritinRange)
	factors = appendIfPresent(factors, "BMI", input.BMI, "", bmiRange)

	return factors
}

func factor(name string, value float64, unit string, band referenceRange) domain.RiskFactor {
	display := trimFloat(value)
	if unit != "" {
		display = fmt.Sprintf("%s %s", display, unit)
	}
	return domain.RiskFactor{
		Name:        name,
		Value:       display,
		NormalRange: band.display(unit),
		Status:      band.status(value),
	}
}

func appendIfPresent(factors []domain.RiskFactor, name string, value *float64, unit string, band referenceRange) []domain.RiskFactor {
	if value == nil {
		return factors
	}
	return append(factors, factor(name, *value, unit, band))
}
