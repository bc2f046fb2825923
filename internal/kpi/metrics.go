package kpi

// Instant is the point-in-time metrics strip shown next to the
// recommendations: conversion headroom and battery flow rates derived
// from a single reading rather than the whole series.
type Instant struct {
	// EfficiencyPct is the share of generation left after the load,
	// clamped to [0, 100]. Zero when there is no generation.
	EfficiencyPct float64 `json:"efficiency_pct"`

	// ChargeRateW scales solar power by the battery's remaining headroom;
	// a full battery charges at 0 regardless of generation.
	ChargeRateW float64 `json:"charge_rate_w"`

	// DischargeRateW scales load power by the held charge; an empty
	// battery discharges at 0 regardless of load.
	DischargeRateW float64 `json:"discharge_rate_w"`

	// NetPowerW is generation minus load, negative when drawing down.
	NetPowerW float64 `json:"net_power_w"`
}

// InstantMetrics derives the instantaneous figures from one reading.
func InstantMetrics(socPct, solarPowerW, loadPowerW float64) Instant {
	var efficiency float64
	if solarPowerW > 0 {
		efficiency = clamp((solarPowerW-loadPowerW)/solarPowerW*100, 0, 100)
	}

	return Instant{
		EfficiencyPct:  efficiency,
		ChargeRateW:    solarPowerW / 100 * (100 - socPct),
		DischargeRateW: loadPowerW / 100 * socPct,
		NetPowerW:      solarPowerW - loadPowerW,
	}
}
