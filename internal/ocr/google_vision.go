package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const (
	// MaxFileSizeBytes is the maximum input size for synchronous processing (20MB)
	MaxFileSizeBytes = 20 * 1024 * 1024

	// MaxPagesSync is the maximum number of pages for synchronous processing
	MaxPagesSync = 5
)

// Mime types accepted by the file annotation API.
const (
	mimePDF  = "application/pdf"
	mimeTIFF = "image/tiff"
)

// GoogleVisionService implements Service using Google Cloud Vision.
type GoogleVisionService struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionService creates a Vision client with credentials from the
// environment.
func NewGoogleVisionService(ctx context.Context) (*GoogleVisionService, error) {
	const op = "NewGoogleVisionService"

	var opts []option.ClientOption
	details := "no credentials found in environment"
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
		details = "failed to create client with GOOGLE_CREDENTIALS"
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
		details = "failed to create client with GOOGLE_APPLICATION_CREDENTIALS"
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		if len(opts) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, details)
		}
		return nil, WrapOCRError(op, err, details)
	}

	return &GoogleVisionService{client: client}, nil
}

// Extract implements Service.
func (g *GoogleVisionService) Extract(ctx context.Context, r io.Reader) (*Result, error) {
	const op = "Extract"
	startTime := time.Now()

	// Read one byte past the limit to detect oversized input without buffering it all.
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSizeBytes+1))
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read input")
	}
	if len(data) > MaxFileSizeBytes {
		return nil, WrapOCRError(op, ErrInputTooLarge, fmt.Sprintf("more than %d bytes", MaxFileSizeBytes))
	}

	mimeType, err := detectMimeType(data)
	if err != nil {
		return nil, WrapOCRError(op, err, "")
	}

	var pages []*visionpb.AnnotateImageResponse
	if mimeType == mimePDF || mimeType == mimeTIFF {
		pages, err = g.annotateFile(ctx, data, mimeType)
	} else {
		pages, err = g.annotateImage(ctx, data)
	}
	if err != nil {
		return nil, WrapOCRError(op, err, mimeType)
	}

	result, err := textFromImageResponses(pages)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to process Vision API response")
	}

	result.MimeType = mimeType
	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)
	return result, nil
}

func (g *GoogleVisionService) annotateFile(ctx context.Context, data []byte, mimeType string) ([]*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  data,
					MimeType: mimeType,
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: Vision API call failed: %w", ErrOCRFailed, err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("%w: no response from Vision API", ErrOCRFailed)
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, fmt.Errorf("%w: Vision API error: %s", ErrOCRFailed, fileResp.Error.Message)
	}
	if len(fileResp.Responses) > MaxPagesSync {
		return nil, fmt.Errorf("%w: document has %d pages", ErrTooManyPages, len(fileResp.Responses))
	}
	return fileResp.Responses, nil
}

func (g *GoogleVisionService) annotateImage(ctx context.Context, data []byte) ([]*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: Vision API call failed: %w", ErrOCRFailed, err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("%w: no response from Vision API", ErrOCRFailed)
	}
	return resp.Responses, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionService) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// detectMimeType sniffs the input type from its leading bytes.
func detectMimeType(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return mimeTIFF, nil
	}

	mimeType := http.DetectContentType(data)
	switch mimeType {
	case mimePDF, "image/png", "image/jpeg", "image/gif", "image/bmp", "image/webp":
		return mimeType, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
}

// textFromImageResponses joins the per-page annotations into a single Result.
// Pages are separated by a blank line.
func textFromImageResponses(pages []*visionpb.AnnotateImageResponse) (*Result, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyDocument
	}

	var text strings.Builder
	var confidenceSum float32
	var confidenceCount int
	languages := make(map[string]bool)

	for pageIdx, page := range pages {
		if page.Error != nil {
			return nil, fmt.Errorf("error processing page %d: %s", pageIdx+1, page.Error.Message)
		}

		annotation := page.FullTextAnnotation
		if annotation == nil {
			continue
		}

		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(annotation.Text)

		for _, p := range annotation.Pages {
			if p.Confidence > 0 {
				confidenceSum += p.Confidence
				confidenceCount++
			}
			if p.Property == nil {
				continue
			}
			for _, lang := range p.Property.DetectedLanguages {
				if lang.LanguageCode != "" {
					languages[lang.LanguageCode] = true
				}
			}
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return nil, ErrEmptyDocument
	}

	var avgConfidence float32
	if confidenceCount > 0 {
		avgConfidence = confidenceSum / float32(confidenceCount)
	}

	codes := make([]string, 0, len(languages))
	for lang := range languages {
		codes = append(codes, lang)
	}
	sort.Strings(codes)

	return &Result{
		Text:          text.String(),
		PageCount:     len(pages),
		Confidence:    avgConfidence,
		LanguageCodes: codes,
	}, nil
}
