package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemoscan-screening-server/internal/domain"
)

func TestReportHemoglobinAlwaysPresent(t *testing.T) {
	reporter := NewRiskFactorReporter()

	input := &domain.PatientInput{
		Age:        30,
		Gender:     domain.GenderFemale,
		Hemoglobin: 12.5,
	}

	factors := reporter.Report(input)
	require.Len(t, factors, 1)
	assert.Equal(t, "Hemoglobin", factors[0].Name)
	assert.Equal(t, "12.5 g/dL", factors[0].Value)
	assert.Equal(t, "12-16 g/dL", factors[0].NormalRange)
	assert.Equal(t, domain.StatusNormal, factors[0].Status)
}

func TestReportGenderAdjustedRanges(t *testing.T) {
	reporter := NewRiskFactorReporter()

	// 13.0 g/dL is normal for a woman and below range for a man.
	female := &domain.PatientInput{Gender: domain.GenderFemale, Hemoglobin: 13.0}
	male := &domain.PatientInput{Gender: domain.GenderMale, Hemoglobin: 13.0}

	assert.Equal(t, domain.StatusNormal, reporter.Report(female)[0].Status)
	assert.Equal(t, domain.StatusLow, reporter.Report(male)[0].Status)
	assert.Equal(t, "13.5-17.5 g/dL", reporter.Report(male)[0].NormalRange)
}

func TestReportFullPanel(t *testing.T) {
	reporter := NewRiskFactorReporter()

	factors := reporter.Report(fullPanelInput())
	require.Len(t, factors, 9)

	byName := make(map[string]domain.RiskFactor, len(factors))
	for _, f := range factors {
		byName[f.Name] = f
	}

	assert.Equal(t, domain.StatusLow, byName["RBC Count"].Status) // 4.0 vs female 4.0-5.0 lower bound
	assert.Equal(t, domain.StatusNormal, byName["MCV"].Status)
	assert.Equal(t, domain.StatusNormal, byName["Iron Level"].Status)
	assert.Equal(t, "20-250 ng/mL", byName["Ferritin"].NormalRange)
	assert.Equal(t, "18.5-24.9", byName["BMI"].NormalRange, "BMI is unitless")
	assert.Equal(t, "22", byName["BMI"].Value)
}

func TestReportStatusBands(t *testing.T) {
	reporter := NewRiskFactorReporter()

	input := &domain.PatientInput{
		Gender:     domain.GenderFemale,
		Hemoglobin: 12.0, // exactly at the lower bound is still normal
		MCV:        floatPtr(105),
		Ferritin:   floatPtr(10),
	}

	factors := reporter.Report(input)
	require.Len(t, factors, 3)

	assert.Equal(t, domain.StatusNormal, factors[0].Status)
	assert.Equal(t, domain.StatusHigh, factors[1].Status)
	assert.Equal(t, domain.StatusLow, factors[2].Status)
}

func TestReportOmitsAbsentParameters(t *testing.T) {
	reporter := NewRiskFactorReporter()

	input := &domain.PatientInput{
		Gender:     domain.GenderFemale,
		Hemoglobin: 11.0,
		Ferritin:   floatPtr(45),
	}

	factors := reporter.Report(input)
	require.Len(t, factors, 2)
	assert.Equal(t, "Hemoglobin", factors[0].Name)
	assert.Equal(t, "Ferritin", factors[1].Name)
}
