// Package ocr extracts the text of a scanned document with Google Cloud
// Vision so it can be ranked against its original.
//
// PDF and TIFF input goes through the file annotation API, other images
// (PNG, JPEG, GIF, BMP, WEBP) through the image annotation API. Both use
// document text detection and are synchronous.
//
// Credentials are read from the environment:
//   - GOOGLE_CREDENTIALS: inline service account JSON, OR
//   - GOOGLE_APPLICATION_CREDENTIALS: path to a service account JSON file
//
// Without either, Application Default Credentials are tried.
//
// Limits of synchronous processing:
//   - 20MB per input
//   - 5 pages per PDF or TIFF
package ocr

import (
	"context"
	"io"
	"time"
)

// Service extracts text from a scanned document.
type Service interface {
	// Extract runs text detection on the document read from r.
	Extract(ctx context.Context, r io.Reader) (*Result, error)

	// Close releases the underlying client.
	Close() error
}

// Result holds the text of a scanned document with detection metadata.
type Result struct {
	// Text is the detected text of all pages in reading order.
	Text string `json:"text"`

	// MimeType is the detected type of the input.
	MimeType string `json:"mime_type"`

	// PageCount is the number of pages processed.
	PageCount int `json:"page_count"`

	// Confidence is the mean page confidence (0.0 to 1.0), 0 if unreported.
	Confidence float32 `json:"confidence"`

	// LanguageCodes lists the detected languages, sorted.
	LanguageCodes []string `json:"language_codes,omitempty"`

	ProcessedAt        time.Time     `json:"processed_at"`
	ProcessingDuration time.Duration `json:"processing_duration"`
}
