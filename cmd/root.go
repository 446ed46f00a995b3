package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"rankocr/internal/config"
	"rankocr/internal/logger"
	"rankocr/internal/ranking"
)

var version = "1.0.0"

// appConfig is set by Execute; nil means defaults.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "rankocr",
	Short: "rankocr - rank OCR output against the original document",
	Long: `rankocr estimates how far an OCR-produced document is from its
known-correct original and reports the difference as an error percentage.

Both documents are split into words (punctuation removed, accents folded,
case kept) and aligned word by word. Every missing, inserted or misread word
counts as one error; the error rate is the error count relative to the number
of words in the original.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("rankocr executed without a command")

		fmt.Fprintln(cmd.OutOrStdout(), "Use --help to see available commands and options.")
	},
}

// Execute runs the command line with cfg as the source of defaults.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")
	appConfig = cfg

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// defaultRanker is the ranker name used when --ranker is not given.
func defaultRanker() string {
	if appConfig != nil && appConfig.Ranker != "" {
		return appConfig.Ranker
	}
	return ranking.Default
}

// resolveRanker looks up the --ranker flag, falling back to the configured default.
func resolveRanker(cmd *cobra.Command) (string, ranking.Ranker, error) {
	name, _ := cmd.Flags().GetString("ranker")
	if name == "" {
		name = defaultRanker()
	}
	r, err := ranking.Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return name, r, nil
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
