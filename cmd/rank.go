package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"rankocr/internal/logger"
	"rankocr/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank [original-file] [comparative-file]",
	Short: "Rank a text document against its original",
	Long: `Compare a document (typically OCR output) with its original and print
the error rate in percent.

The rate can exceed 100 when the compared document contains many more
words than the original. An empty original ranks 0 against an empty
document and 100 per word otherwise.`,
	Example: `  # Print the error rate
  rankocr rank original.txt scanned.txt

  # Use the word edit distance ranker and print JSON
  rankocr rank original.txt scanned.txt --ranker wordedit --json`,
	Args: cobra.ExactArgs(2),
	RunE: runRank,
}

// RankOutput is the JSON output of the rank and ocr commands.
type RankOutput struct {
	Ranker      string `json:"ranker"`
	Original    string `json:"original"`
	Comparative string `json:"comparative"`
	ranking.Result
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("ranker", "r", "", "Ranker used for the comparison (default from RANKER, see 'rankocr rankers')")
	rankCmd.Flags().Bool("json", false, "Output as JSON")
}

func runRank(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("rank")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	name, ranker, err := resolveRanker(cmd)
	if err != nil {
		return err
	}

	original, err := readDocument(args[0], log)
	if err != nil {
		return err
	}
	comparative, err := readDocument(args[1], log)
	if err != nil {
		return err
	}

	res := ranking.Rank(ranker, original, comparative)
	log.Info().
		Str("ranker", name).
		Str("original", args[0]).
		Str("comparative", args[1]).
		Int("error_count", res.ErrorCount).
		Int("original_tokens", res.OriginalTokens).
		Float64("error_rate", res.ErrorRate).
		Msg("Documents ranked")

	return writeRank(cmd.OutOrStdout(), RankOutput{
		Ranker:      name,
		Original:    filepath.Base(args[0]),
		Comparative: filepath.Base(args[1]),
		Result:      res,
	}, jsonOutput)
}

// readDocument reads a whole text file after checking it is a regular file.
func readDocument(path string, log zerolog.Logger) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("Document not found")
			return "", fmt.Errorf("document not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().Str("file", path).Msg("Permission denied accessing document")
			return "", fmt.Errorf("permission denied accessing document: %s", path)
		}
		return "", fmt.Errorf("error accessing document: %w", err)
	}
	if !info.Mode().IsRegular() {
		log.Error().Str("file", path).Msg("Path is not a regular file")
		return "", fmt.Errorf("path is not a regular file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return string(data), nil
}

func writeRank(w io.Writer, out RankOutput, jsonOutput bool) error {
	if !jsonOutput {
		_, err := fmt.Fprintf(w, "%.3f\n", out.ErrorRate)
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
