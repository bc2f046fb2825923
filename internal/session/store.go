// Package session owns the telemetry series of uploaded files. A session
// is created per upload, read by the KPI and chart paths, and replaced or
// discarded wholesale: partial overwrites do not exist at this layer.
package session

import (
	"context"
	"errors"
	"time"

	"heliowatch/internal/telemetry"
)

// ErrNotFound reports a missing or expired session.
var ErrNotFound = errors.New("session not found")

// DefaultTTL bounds how long an idle upload session is retained.
const DefaultTTL = 30 * time.Minute

// Session is one uploaded file's parsed state.
type Session struct {
	ID         string             `json:"id"`
	FileName   string             `json:"file_name"`
	Samples    []telemetry.Sample `json:"samples"`
	UploadedAt time.Time          `json:"uploaded_at"`
}

// Store is the session persistence contract. Put replaces any existing
// session with the same ID atomically from the reader's perspective.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error

	// Ping reports backend reachability for readiness checks.
	Ping(ctx context.Context) error
}
