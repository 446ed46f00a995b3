package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"rankocr/internal/ranking"
)

var rankersCmd = &cobra.Command{
	Use:   "rankers",
	Short: "List the available rankers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def := strings.ToLower(defaultRanker())
		for _, name := range ranking.Names() {
			if name == def {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", name)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankersCmd)
}
