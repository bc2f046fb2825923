// Package advisor turns current system state into ranked operational
// guidance: an ordered set of severity-tagged recommendations and a
// discrete advisory tier for the battery badge.
package advisor

// Severity classifies a single recommendation for display.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Language selects the message catalog. Exactly two catalogs exist; the
// text is fully duplicated per language rather than translated at runtime.
type Language string

const (
	LangEnglish Language = "en"
	LangFrench  Language = "fr"
)

// Trend is the direction of SOC change between two consecutive readings,
// supplied by the caller.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// TrendThreshold is the SOC delta, in percentage points, beyond which the
// change counts as non-stable. The comparison happens caller-side but the
// threshold is part of this package's contract.
const TrendThreshold = 2.0

// TrendOf derives the trend from the current and previous SOC readings.
func TrendOf(current, previous float64) Trend {
	switch {
	case current > previous+TrendThreshold:
		return TrendIncreasing
	case current < previous-TrendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Advice is one recommendation. Severity is structured rather than
// embedded in the text so downstream icon selection never sniffs
// substrings; the text still carries the original glyphs.
type Advice struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// State is the system snapshot the recommendation rules evaluate.
type State struct {
	SocPct        float64 `json:"soc"`
	IrradianceWm2 float64 `json:"irradiance"`
	SolarPowerW   float64 `json:"solar_power"`
	LoadPowerW    float64 `json:"load_power"`
	Trend         Trend   `json:"trend"`
}
