package telemetry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseWorkbookFirstSheet(t *testing.T) {
	raw := workbookBytes(t, [][]interface{}{
		{"time_h", "irradiance_Wm2", "solar_power_W", "load_power_W", "battery_soc_pct"},
		{"08:00", 420, 1000, 500, 52},
		{"09:00", 610, 2000, 1500, 55},
	})

	samples, err := ParseWorkbook(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "08:00", samples[0].TimeLabel)
	assert.Equal(t, 2000.0, samples[1].SolarPowerW)
	assert.Equal(t, 55.0, samples[1].BatterySocPct)
}

func TestParseWorkbookKeepsRowWithBlankTrailingCell(t *testing.T) {
	raw := workbookBytes(t, [][]interface{}{
		{"time_h", "irradiance_Wm2", "solar_power_W", "load_power_W", "battery_soc_pct"},
		{"08:00", 420, 1000, 500, 52},
		{"09:00", 610, 2000, 1500}, // battery_soc_pct left blank
	})

	samples, err := ParseWorkbook(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "09:00", samples[1].TimeLabel)
	assert.Equal(t, 0.0, samples[1].BatterySocPct)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}
