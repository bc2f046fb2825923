package telemetry

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Column names recognized by the parser, compared case-insensitively
// after trimming. time_h and solar_power_w are required; the rest default
// to zero when the column is absent.
const (
	colTime       = "time_h"
	colIrradiance = "irradiance_wm2"
	colSolar      = "solar_power_w"
	colLoad       = "load_power_w"
	colSoc        = "battery_soc_pct"
)

var (
	// Both comma and semicolon are accepted to tolerate regional CSV
	// dialects that use ';' as the field separator.
	delimiters = regexp.MustCompile(`[;,]`)
	lineBreaks = regexp.MustCompile(`\r?\n`)
	clockToken = regexp.MustCompile(`\d{2}:\d{2}`)
)

// Parse converts delimited text into an ordered sample series. It never
// fails: malformed rows are dropped, unparseable numbers normalize to 0,
// and input whose header cannot be matched yields an empty series. Row
// order is preserved; the chronological assumption rests on input order,
// not on timestamp parsing.
func Parse(text string) []Sample {
	var lines []string
	for _, l := range lineBreaks.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	// Need a header plus at least one data row.
	if len(lines) < 2 {
		return nil
	}

	header := splitRow(lines[0])
	idx := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		// First occurrence wins on duplicate columns.
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	timeIdx, hasTime := idx[colTime]
	solarIdx, hasSolar := idx[colSolar]
	if !hasTime || !hasSolar {
		return nil
	}

	samples := make([]Sample, 0, len(lines)-1)
	for _, row := range lines[1:] {
		cols := splitRow(row)
		// Short or corrupt rows are silently dropped, not reported.
		if len(cols) < len(header) {
			continue
		}

		timeRaw := strings.TrimSpace(cols[timeIdx])
		if timeRaw == "" {
			continue
		}

		samples = append(samples, Sample{
			TimeLabel:     timeLabel(timeRaw),
			SolarPowerW:   fieldFloat(cols, solarIdx),
			LoadPowerW:    optionalFloat(cols, idx, colLoad),
			BatterySocPct: optionalFloat(cols, idx, colSoc),
			IrradianceWm2: optionalFloat(cols, idx, colIrradiance),
		})
	}
	return samples
}

func splitRow(row string) []string {
	return delimiters.Split(row, -1)
}

// timeLabel extracts an HH:MM token when one appears anywhere in the raw
// value; otherwise the trimmed text passes through verbatim.
func timeLabel(raw string) string {
	if m := clockToken.FindString(raw); m != "" {
		return m
	}
	return raw
}

func optionalFloat(cols []string, idx map[string]int, name string) float64 {
	i, ok := idx[name]
	if !ok {
		return 0
	}
	return fieldFloat(cols, i)
}

func fieldFloat(cols []string, i int) float64 {
	if i >= len(cols) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cols[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
