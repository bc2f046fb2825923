package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendDeterministic(t *testing.T) {
	state := State{SocPct: 10, IrradianceWm2: 900, SolarPowerW: 1000, LoadPowerW: 200, Trend: TrendStable}

	first := Recommend(state, LangEnglish)
	second := Recommend(state, LangEnglish)
	assert.Equal(t, first, second, "no hidden state between calls")
}

func TestRecommendCriticalWithHighSun(t *testing.T) {
	state := State{SocPct: 10, IrradianceWm2: 900, SolarPowerW: 1000, LoadPowerW: 200, Trend: TrendStable}
	out := Recommend(state, LangEnglish)

	// Critical tier fires two messages, then high irradiance, then the
	// solar-surplus rule (solar > 1.5x load and soc < 80), then the
	// fall-through trend rule stays silent.
	require.Len(t, out, 4)
	assert.Equal(t, SeverityCritical, out[0].Severity)
	assert.Equal(t, SeverityCritical, out[1].Severity)
	assert.Contains(t, out[2].Text, "High solar production")
	assert.Equal(t, SeveritySuccess, out[3].Severity)
}

func TestRecommendFallbackWhenNoRuleFires(t *testing.T) {
	state := State{SocPct: 70, IrradianceWm2: 500, SolarPowerW: 500, LoadPowerW: 400, Trend: TrendStable}
	out := Recommend(state, LangEnglish)

	require.Len(t, out, 1)
	assert.Equal(t, SeveritySuccess, out[0].Severity)
	assert.Contains(t, out[0].Text, "operating normally")
}

func TestRecommendSocTierChainIsExclusive(t *testing.T) {
	for _, tc := range []struct {
		soc  float64
		want int
	}{
		{19.9, 2}, // critical: two messages
		{20, 1},   // low: one
		{39.9, 1},
		{40, 0}, // quiet band
		{95, 0},
		{95.1, 1}, // full notice
	} {
		state := State{SocPct: tc.soc, IrradianceWm2: 500, SolarPowerW: 400, LoadPowerW: 400, Trend: TrendStable}
		out := Recommend(state, LangEnglish)
		got := 0
		for _, a := range out {
			switch a.Text {
			case english.socCritical, english.socEssential, english.socLow, english.socFull:
				got++
			}
		}
		assert.Equalf(t, tc.want, got, "soc=%v", tc.soc)
	}
}

func TestRecommendLoadRules(t *testing.T) {
	// Load over generation with soc < 60: warning plus deferred-task tip.
	out := Recommend(State{SocPct: 50, IrradianceWm2: 500, SolarPowerW: 300, LoadPowerW: 600, Trend: TrendStable}, LangEnglish)
	require.Len(t, out, 2)
	assert.Equal(t, SeverityWarning, out[0].Severity)
	assert.Equal(t, english.loadDeferTip, out[1].Text)

	// Surplus branch suppressed at soc >= 80.
	out = Recommend(State{SocPct: 85, IrradianceWm2: 500, SolarPowerW: 900, LoadPowerW: 200, Trend: TrendStable}, LangEnglish)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Text, "operating normally")
}

func TestRecommendTrendRule(t *testing.T) {
	out := Recommend(State{SocPct: 45, IrradianceWm2: 500, SolarPowerW: 500, LoadPowerW: 450, Trend: TrendDecreasing}, LangEnglish)
	require.Len(t, out, 1)
	assert.Equal(t, english.trendDischarge, out[0].Text)

	// Above 50 the trend rule is silent.
	out = Recommend(State{SocPct: 55, IrradianceWm2: 500, SolarPowerW: 500, LoadPowerW: 450, Trend: TrendDecreasing}, LangEnglish)
	assert.Contains(t, out[0].Text, "operating normally")
}

func TestRecommendFrenchCatalog(t *testing.T) {
	state := State{SocPct: 10, IrradianceWm2: 500, SolarPowerW: 500, LoadPowerW: 450, Trend: TrendStable}
	out := Recommend(state, LangFrench)
	require.NotEmpty(t, out)
	assert.Equal(t, french.socCritical, out[0].Text)
}

func TestRecommendUnknownLanguageDefaultsToEnglish(t *testing.T) {
	state := State{SocPct: 70, IrradianceWm2: 500, SolarPowerW: 500, LoadPowerW: 400, Trend: TrendStable}
	out := Recommend(state, Language("de"))
	require.Len(t, out, 1)
	assert.Equal(t, english.allNormal, out[0].Text)
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, TrendStable, TrendOf(50, 50))
	assert.Equal(t, TrendStable, TrendOf(52, 50), "delta of exactly 2 is stable")
	assert.Equal(t, TrendIncreasing, TrendOf(52.1, 50))
	assert.Equal(t, TrendDecreasing, TrendOf(47.9, 50))
}
