package ocr

import (
	"errors"
	"fmt"
)

// Common OCR errors
var (
	// ErrInputTooLarge is returned when the input exceeds MaxFileSizeBytes.
	ErrInputTooLarge = errors.New("input exceeds the maximum size (20MB)")

	// ErrUnsupportedFormat is returned for input that is neither a PDF nor a supported image.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrOCRFailed is returned when the Vision API fails to process the document.
	ErrOCRFailed = errors.New("OCR processing failed")

	// ErrMissingCredentials is returned when no Google Cloud credentials could be found.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrTooManyPages is returned when a PDF or TIFF has more than MaxPagesSync pages.
	ErrTooManyPages = errors.New("document has too many pages (maximum 5 pages for synchronous processing)")

	// ErrEmptyDocument is returned when no text was detected.
	ErrEmptyDocument = errors.New("document contains no readable text")
)

// OCRError wraps errors with the operation that failed.
type OCRError struct {
	// Op is the operation that failed (e.g., "Extract", "NewGoogleVisionService").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

func (e *OCRError) Unwrap() error {
	return e.Err
}

// WrapOCRError wraps err as an OCRError unless it already is one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err
	}

	return &OCRError{Op: op, Err: err, Details: details}
}
