package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTierBoundaries(t *testing.T) {
	for _, tc := range []struct {
		soc  float64
		want Tier
	}{
		{4.9, TierCritical},
		{5, TierLow},
		{19.9, TierLow},
		{20, TierNormal},
		{59.9, TierNormal},
		{60, TierGood},
		{89.9, TierGood},
		{90, TierFull},
		{100, TierFull},
	} {
		got := Classify(tc.soc, LangEnglish)
		assert.Equalf(t, tc.want, got.Tier, "soc=%v", tc.soc)
	}
}

func TestClassifyOutOfRangeInputs(t *testing.T) {
	assert.Equal(t, TierCritical, Classify(-10, LangEnglish).Tier)
	assert.Equal(t, TierFull, Classify(150, LangEnglish).Tier)
}

func TestClassifyLocaleSelection(t *testing.T) {
	fr := Classify(50, LangFrench)
	assert.Equal(t, "Normal", fr.Title)
	assert.Contains(t, fr.Description, "Fonctionnement nominal")

	en := Classify(2, LangEnglish)
	assert.Equal(t, "Critical", en.Title)
	assert.Equal(t, "red", en.Style)

	// Unknown locale behaves like English.
	assert.Equal(t, en, Classify(2, Language("es")))
}
