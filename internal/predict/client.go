// Package predict is the client side of the battery SOC model endpoint.
// The model itself is opaque: this package only implements the wire
// contract and the degradation behavior when the endpoint is unreachable.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Error is the only hard-failure surface of the pipeline. It keeps the
// server-provided error text when the endpoint returned one, so callers
// can render it distinctly from a legitimate 0% SOC reading.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("prediction endpoint returned %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Input is the request payload of the single-sample endpoint.
type Input struct {
	TimeH         string  `json:"time_h"`
	IrradianceWm2 float64 `json:"irradiance_Wm2"`
	SolarPowerW   float64 `json:"solar_power_W"`
	LoadPowerW    float64 `json:"load_power_W"`
}

// Result is a parsed prediction response. Input echoes the
// server-normalized request payload; ReceivedAt is stamped client-side
// when the response arrives and is distinct from Input.TimeH, which
// reflects request time.
type Result struct {
	ModelUsed  string    `json:"model_used"`
	Input      Input     `json:"input"`
	SocPct     float64   `json:"soc_pct"`
	Source     string    `json:"source,omitempty"`
	RowIndex   *int      `json:"row_index,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// wire mirrors the endpoint's JSON response shape.
type wire struct {
	ModelUsed  string `json:"model_used"`
	Input      Input  `json:"input"`
	Prediction struct {
		BatterySocPct float64 `json:"battery_soc_pct"`
	} `json:"prediction"`
	Source   string `json:"source,omitempty"`
	RowIndex *int   `json:"row_index,omitempty"`
}

// Client issues requests to a configured prediction base URL. Each call is
// independent and at-most-once: no retry, no backoff, no deduplication.
// Callers own any retry policy.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewClient builds a client for the given base URL. A zero timeout
// defaults to 15s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// Predict obtains a SOC estimate for a single sample. Absent numeric
// fields are already zero-valued in Input; an absent time field is
// substituted with the current timestamp. A non-2xx response or transport
// failure yields *Error and never a defaulted numeric SOC.
func (c *Client) Predict(ctx context.Context, in Input) (*Result, error) {
	if in.TimeH == "" {
		in.TimeH = c.now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// PredictFile uploads a whole CSV/spreadsheet to the batch endpoint as a
// multipart "file" field. The backend predicts from the last row and may
// report source and row_index.
func (c *Client) PredictFile(ctx context.Context, name string, file io.Reader) (*Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("buffering upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_csv", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: "failed to reach prediction endpoint: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "reading prediction response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: serverMessage(raw)}
	}

	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "malformed prediction response"}
	}

	return &Result{
		ModelUsed:  w.ModelUsed,
		Input:      w.Input,
		SocPct:     w.Prediction.BatterySocPct,
		Source:     w.Source,
		RowIndex:   w.RowIndex,
		ReceivedAt: c.now().UTC(),
	}, nil
}

// serverMessage extracts the endpoint's {"error": "..."} text when
// present, falling back to a generic message.
func serverMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return "prediction service unavailable"
}
