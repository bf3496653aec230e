package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemoscan-screening-server/internal/domain"
)

func TestKeyIsDeterministic(t *testing.T) {
	input := &domain.PatientInput{
		Age:         30,
		Gender:      domain.GenderFemale,
		Hemoglobin:  12.5,
		DietQuality: domain.DietAverage,
	}

	first, err := Key(domain.ModeQuick, input)
	require.NoError(t, err)
	second, err := Key(domain.ModeQuick, input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "hemoscan:prediction:quick:"))
}

func TestKeyVariesByMode(t *testing.T) {
	input := &domain.PatientInput{
		Age:         30,
		Gender:      domain.GenderFemale,
		Hemoglobin:  12.5,
		DietQuality: domain.DietAverage,
	}

	quick, err := Key(domain.ModeQuick, input)
	require.NoError(t, err)
	full, err := Key(domain.ModeFull, input)
	require.NoError(t, err)

	assert.NotEqual(t, quick, full)
}

func TestKeyVariesByInput(t *testing.T) {
	base := &domain.PatientInput{
		Age:         30,
		Gender:      domain.GenderFemale,
		Hemoglobin:  12.5,
		DietQuality: domain.DietAverage,
	}
	changed := &domain.PatientInput{
		Age:         30,
		Gender:      domain.GenderFemale,
		Hemoglobin:  12.6,
		DietQuality: domain.DietAverage,
	}

	baseKey, err := Key(domain.ModeQuick, base)
	require.NoError(t, err)
	changedKey, err := Key(domain.ModeQuick, changed)
	require.NoError(t, err)

	assert.NotEqual(t, baseKey, changedKey)
}
