package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstantMetrics(t *testing.T) {
	m := InstantMetrics(50, 2000, 500)
	assert.Equal(t, 75.0, m.EfficiencyPct)
	assert.Equal(t, 1000.0, m.ChargeRateW)
	assert.Equal(t, 250.0, m.DischargeRateW)
	assert.Equal(t, 1500.0, m.NetPowerW)
}

func TestInstantMetricsBoundaries(t *testing.T) {
	cases := []struct {
		name               string
		soc, solar, load   float64
		efficiency, charge float64
		discharge, net     float64
	}{
		{"no generation", 40, 0, 800, 0, 0, 320, -800},
		{"load exceeds generation", 30, 500, 2000, 0, 350, 600, -1500},
		{"no load", 50, 1000, 0, 100, 500, 0, 1000},
		{"full battery", 100, 1500, 600, 60, 0, 600, 900},
		{"empty battery", 0, 1500, 600, 60, 1500, 0, 900},
		{"all zero", 0, 0, 0, 0, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := InstantMetrics(tc.soc, tc.solar, tc.load)
			assert.Equal(t, tc.efficiency, m.EfficiencyPct)
			assert.Equal(t, tc.charge, m.ChargeRateW)
			assert.Equal(t, tc.discharge, m.DischargeRateW)
			assert.Equal(t, tc.net, m.NetPowerW)
		})
	}
}
