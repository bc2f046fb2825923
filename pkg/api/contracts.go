// Package api defines the wire contracts shared by the HTTP server and
// the CLI output paths.
package api

import (
	"heliowatch/internal/advisor"
	"heliowatch/internal/kpi"
	"heliowatch/internal/telemetry"
)

// RecommendRequest is the input to the recommendation endpoint. Field
// names follow the dashboard's state shape.
type RecommendRequest struct {
	SocPct        float64 `json:"soc"`
	IrradianceWm2 float64 `json:"irradiance"`
	SolarPowerW   float64 `json:"solar_power"`
	LoadPowerW    float64 `json:"load_power"`
	Trend         string  `json:"trend"`
	Language      string  `json:"language,omitempty"`
}

// RecommendResponse carries the ordered advice list together with the
// instantaneous metrics strip rendered beside it.
type RecommendResponse struct {
	Recommendations []advisor.Advice `json:"recommendations"`
	Metrics         kpi.Instant      `json:"metrics"`
}

// UploadResponse is returned after a successful file upload: the session
// handle plus everything the dashboard renders immediately.
type UploadResponse struct {
	SessionID string            `json:"session_id"`
	FileName  string            `json:"file_name"`
	Rows      int               `json:"rows"`
	Kpis      *KpiView          `json:"kpis,omitempty"`
	Advisory  *advisor.Advisory `json:"advisory,omitempty"`
}

// SeriesResponse is the normalized series of one session.
type SeriesResponse struct {
	SessionID string             `json:"session_id"`
	Samples   []telemetry.Sample `json:"samples"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
