package telemetry

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the upload size ceiling. Oversized files are rejected
// before any parsing is attempted.
const MaxUploadBytes = 10 * 1024 * 1024

// RequiredFields is the strict upload-validation header set. The parser
// itself only needs time_h and solar_power_W; the stricter pre-check used
// at upload time validates all four and names the ones that are missing.
// battery_soc_pct is deliberately not in the set: a series without it is
// accepted and parses with SOC 0.
var RequiredFields = []string{
	"time_h",
	"irradiance_Wm2",
	"solar_power_W",
	"load_power_W",
}

var acceptedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// ValidationError is a user-facing upload rejection. It is reported to the
// caller verbatim; it never wraps an internal error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ValidateUpload checks file name and size before the file is read.
func ValidateUpload(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !acceptedExtensions[ext] {
		return &ValidationError{Reason: fmt.Sprintf("unsupported file type %q: expected .csv, .xls or .xlsx", ext)}
	}
	if size > MaxUploadBytes {
		return &ValidationError{Reason: fmt.Sprintf("file exceeds maximum size of %d MB", MaxUploadBytes/(1024*1024))}
	}
	return nil
}

// MissingFields returns the RequiredFields absent from the header line of
// the given delimited text, in declaration order. An empty input reports
// every field as missing.
func MissingFields(text string) []string {
	var headerCols []string
	for _, l := range lineBreaks.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			headerCols = splitRow(l)
			break
		}
	}

	present := make(map[string]bool, len(headerCols))
	for _, col := range headerCols {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}

	var missing []string
	for _, f := range RequiredFields {
		if !present[strings.ToLower(f)] {
			missing = append(missing, f)
		}
	}
	return missing
}

// ValidateHeader runs the strict pre-check and reports the missing fields
// in a single user-facing error, matching the upload path's behavior of
// naming each absent column.
func ValidateHeader(text string) error {
	missing := MissingFields(text)
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Reason: "missing required fields: " + strings.Join(missing, ", ")}
}
