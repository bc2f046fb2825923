// Package telemetry converts raw delimited uploads into a normalized
// time series of energy observations.
package telemetry

// Sample is one observation in an uploaded series. Samples are built
// exclusively by Parse and are immutable afterwards; a series is owned by
// the upload session that produced it and is replaced wholesale, never
// patched.
type Sample struct {
	// TimeLabel is a display-oriented token, ideally "HH:MM", otherwise
	// whatever text survived parsing.
	TimeLabel string `json:"time"`

	// SolarPowerW is instantaneous solar generation in watts. Expected
	// non-negative but not enforced; unparseable input normalizes to 0.
	SolarPowerW float64 `json:"solar_power_w"`

	// LoadPowerW is instantaneous consumption in watts.
	LoadPowerW float64 `json:"load_power_w"`

	// BatterySocPct is the state of charge at this sample. Semantically
	// 0-100 but not clamped at parse time.
	BatterySocPct float64 `json:"battery_soc_pct"`

	// IrradianceWm2 is solar irradiance in W/m²; 0 when the column is
	// absent.
	IrradianceWm2 float64 `json:"irradiance_wm2"`
}
