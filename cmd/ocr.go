package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"rankocr/internal/logger"
	"rankocr/internal/ocr"
	"rankocr/internal/ranking"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [original-file] [scan-file]",
	Short: "OCR a scan with Google Cloud Vision and rank it against the original",
	Long: `Run Google Cloud Vision document text detection on a scanned PDF or image
and rank the detected text against the original text document.

Supported scans: PDF and TIFF (up to 5 pages), PNG, JPEG, GIF, BMP, WEBP,
all up to 20MB.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Rank the OCR of scan.pdf against original.txt
  rankocr ocr original.txt scan.pdf

  # Keep the detected text and print JSON
  rankocr ocr original.txt page.png --text-out page.txt --json

  # Process with custom timeout
  rankocr ocr original.txt large-scan.pdf --timeout 600`,
	Args: cobra.ExactArgs(2),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringP("ranker", "r", "", "Ranker used for the comparison (default from RANKER, see 'rankocr rankers')")
	ocrCmd.Flags().Bool("json", false, "Output as JSON")
	ocrCmd.Flags().StringP("text-out", "o", "", "Also write the detected text to this file")
	ocrCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runOCR(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ocr")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	textOut, _ := cmd.Flags().GetString("text-out")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	name, ranker, err := resolveRanker(cmd)
	if err != nil {
		return err
	}

	originalPath, scanPath := args[0], args[1]
	original, err := readDocument(originalPath, log)
	if err != nil {
		return err
	}

	ctx, cancel := ocrContext(timeoutSecs)
	defer cancel()

	svc, err := createOCRService(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close Vision client")
		}
	}()

	scan, err := os.Open(scanPath)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", scanPath).
			Msg("Failed to open scan")
		return fmt.Errorf("failed to open scan: %w", err)
	}
	defer scan.Close()

	log.Info().
		Str("file", scanPath).
		Int("timeout", timeoutSecs).
		Msg("Starting OCR processing")

	result, err := svc.Extract(ctx, scan)
	if err != nil {
		log.Error().Err(err).Str("file", scanPath).Msg("OCR processing failed")
		return describeOCRError(err)
	}

	log.Info().
		Str("mime_type", result.MimeType).
		Int("page_count", result.PageCount).
		Float32("confidence", result.Confidence).
		Dur("duration", result.ProcessingDuration).
		Int("text_length", len(result.Text)).
		Msg("OCR processing completed successfully")

	if textOut != "" {
		if err := os.WriteFile(textOut, []byte(result.Text), 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", textOut).
				Msg("Failed to write detected text")
			return fmt.Errorf("failed to write detected text: %w", err)
		}
	}

	res := ranking.Rank(ranker, original, result.Text)
	log.Info().
		Str("ranker", name).
		Int("error_count", res.ErrorCount).
		Float64("error_rate", res.ErrorRate).
		Msg("OCR ranked")

	return writeRank(cmd.OutOrStdout(), RankOutput{
		Ranker:      name,
		Original:    filepath.Base(originalPath),
		Comparative: filepath.Base(scanPath),
		Result:      res,
	}, jsonOutput)
}

// ocrContext bounds OCR processing by the timeout and cancels it on SIGINT or SIGTERM.
func ocrContext(timeoutSecs int) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
	return ctx, func() {
		cancel()
		stop()
	}
}

func createOCRService(ctx context.Context, log zerolog.Logger) (ocr.Service, error) {
	svc, err := ocr.NewGoogleVisionService(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create OCR service")
		if errors.Is(err, ocr.ErrMissingCredentials) {
			return nil, fmt.Errorf("set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS, or run 'gcloud auth application-default login': %w", err)
		}
		return nil, fmt.Errorf("failed to create OCR service: %w", err)
	}
	return svc, nil
}

// describeOCRError maps Extract failures to messages for the command line.
// Vision API failures are classified by their gRPC status code.
func describeOCRError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("OCR processing timed out, try a larger --timeout: %w", err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("OCR processing was canceled: %w", err)
	case errors.Is(err, ocr.ErrInputTooLarge),
		errors.Is(err, ocr.ErrTooManyPages),
		errors.Is(err, ocr.ErrUnsupportedFormat),
		errors.Is(err, ocr.ErrEmptyDocument):
		return err
	}

	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return fmt.Errorf("OCR processing timed out, try a larger --timeout: %w", err)
	case codes.Unauthenticated:
		return fmt.Errorf("Google Cloud authentication failed, check the service account credentials: %w", err)
	case codes.PermissionDenied:
		return fmt.Errorf("permission denied, the service account needs the 'Cloud Vision API User' role: %w", err)
	case codes.ResourceExhausted:
		return fmt.Errorf("Vision API quota exceeded: %w", err)
	case codes.InvalidArgument:
		return fmt.Errorf("Vision API rejected the scan: %w", err)
	}
	return fmt.Errorf("OCR processing failed: %w", err)
}
