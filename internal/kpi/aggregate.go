// Package kpi reduces a telemetry series into the dashboard's scalar
// summary metrics.
package kpi

import (
	"heliowatch/internal/telemetry"
)

// DefaultEmissionsFactor is the assumed emissions offset per generated
// kWh, in tons of CO2. The value is a fixed simplification, not tied to a
// specific grid mix; override it per Aggregator when a better factor is
// known.
const DefaultEmissionsFactor = 0.0007

// Summary holds the four derived KPIs. It is recomputed in full whenever
// the underlying series changes and is never partially updated. Every
// field is finite: divisions are guarded and parser output is already
// NaN-free.
type Summary struct {
	// TotalPowerKw is the peak solar power observed, in kW.
	TotalPowerKw float64 `json:"total_power_kw"`

	// TodaysOutputKWh approximates generated energy by treating each
	// sample as one hour of output.
	TodaysOutputKWh float64 `json:"todays_output_kwh"`

	// EfficiencyPct is the ratio of total load energy to total solar
	// energy, clamped to [0, 100]. A crude utilization proxy, not a
	// physical conversion efficiency.
	EfficiencyPct float64 `json:"efficiency_pct"`

	// CarbonSavedTons is TodaysOutputKWh scaled by the emissions factor.
	CarbonSavedTons float64 `json:"carbon_saved_tons"`
}

// Aggregator computes summaries with a configurable emissions factor.
type Aggregator struct {
	// EmissionsFactor is tons CO2 per kWh; zero means
	// DefaultEmissionsFactor.
	EmissionsFactor float64
}

// Aggregate reduces the series to a Summary. An empty series returns nil
// rather than a zeroed summary so callers can keep a prior or default
// display.
//
// Precondition: the series cadence is one sample per hour. The energy
// figures do not detect or correct for other sampling intervals.
func (a Aggregator) Aggregate(samples []telemetry.Sample) *Summary {
	if len(samples) == 0 {
		return nil
	}

	var solarSum, loadSum, maxSolar float64
	for _, s := range samples {
		solarSum += s.SolarPowerW
		loadSum += s.LoadPowerW
		if s.SolarPowerW > maxSolar {
			maxSolar = s.SolarPowerW
		}
	}

	outputKWh := solarSum / 1000

	var efficiency float64
	if solarSum > 0 {
		efficiency = clamp(loadSum/solarSum*100, 0, 100)
	}

	factor := a.EmissionsFactor
	if factor == 0 {
		factor = DefaultEmissionsFactor
	}

	return &Summary{
		TotalPowerKw:    maxSolar / 1000,
		TodaysOutputKWh: outputKWh,
		EfficiencyPct:   efficiency,
		CarbonSavedTons: outputKWh * factor,
	}
}

// Aggregate computes a Summary with the default emissions factor.
func Aggregate(samples []telemetry.Sample) *Summary {
	return Aggregator{}.Aggregate(samples)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
