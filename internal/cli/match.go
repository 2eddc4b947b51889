package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var matchTimeout time.Duration

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <report-id>",
	Short: "Rank candidate matches for a report",
	Long: `Match embeds the report's title and description, embeds the pool of
open reports with the opposite status, and ranks candidates by cosine
similarity plus a location bonus. Only candidates scoring at least the
admission threshold are shown, capped at the configured limit.

Candidate details are masked: enough to recognize a likely match,
not enough to fake a claim.

Example:
  refind match 4f7c2d1a-...`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().DurationVar(&matchTimeout, "timeout", 2*time.Minute, "overall matching timeout")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), matchTimeout)
	defer cancel()

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	candidates, err := eng.Match(ctx, args[0])
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if len(candidates) == 0 {
		fmt.Println("No matches above the admission threshold.")
		return nil
	}

	fmt.Printf("%d candidate(s):\n\n", len(candidates))
	for i, c := range candidates {
		fmt.Printf("%d. %s  score=%.2f\n", i+1, c.ReportID, c.Score)
		fmt.Printf("   title:    %s\n", c.TitleHint)
		if c.LocationHint != "" {
			fmt.Printf("   location: %s\n", c.LocationHint)
		}
		fmt.Printf("   %s\n", c.DescriptionHint)
	}
	return nil
}
