package api

import (
	"github.com/shopspring/decimal"

	"heliowatch/internal/kpi"
)

// KpiView is the display form of a KPI summary. Numeric fields are
// rendered to fixed precision so every client shows the same figures; the
// raw values ride along for charting.
type KpiView struct {
	TotalPower   string `json:"total_power_kw"`
	TodaysOutput string `json:"todays_output_kwh"`
	Efficiency   string `json:"efficiency_pct"`
	CarbonSaved  string `json:"carbon_saved_tons"`

	Raw kpi.Summary `json:"raw"`
}

// NewKpiView renders a summary for display. Returns nil for a nil
// summary so "no data yet" propagates unchanged.
func NewKpiView(s *kpi.Summary) *KpiView {
	if s == nil {
		return nil
	}
	return &KpiView{
		TotalPower:   decimal.NewFromFloat(s.TotalPowerKw).StringFixed(1),
		TodaysOutput: decimal.NewFromFloat(s.TodaysOutputKWh).StringFixed(0),
		Efficiency:   decimal.NewFromFloat(s.EfficiencyPct).StringFixed(1),
		CarbonSaved:  decimal.NewFromFloat(s.CarbonSavedTons).StringFixed(2),
	}
}
