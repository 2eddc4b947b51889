package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

var (
	rescanStatus  string
	rescanTimeout time.Duration
)

// rescanCmd represents the rescan command
var rescanCmd = &cobra.Command{
	Use:   "rescan",
	Short: "Re-match all open reports in parallel",
	Long: `Rescan re-runs matching for every open report of the given status
through the worker pool. Useful after the pool has grown or the
embedding model changed.

Example:
  refind rescan
  refind rescan --status found --timeout 10m`,
	Args: cobra.NoArgs,
	RunE: runRescan,
}

func init() {
	rootCmd.AddCommand(rescanCmd)
	rescanCmd.Flags().StringVar(&rescanStatus, "status", "lost", "which side of the pool to rescan (lost or found)")
	rescanCmd.Flags().DurationVar(&rescanTimeout, "timeout", 10*time.Minute, "total timeout for the rescan")
}

func runRescan(cmd *cobra.Command, args []string) error {
	status := model.Status(rescanStatus)
	if !status.Valid() || status == model.StatusClaimed {
		return fmt.Errorf("%w: rescan status must be lost or found", model.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(context.Background(), rescanTimeout)
	defer cancel()

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	results, err := eng.Rescan(ctx, status)
	if err != nil {
		return fmt.Errorf("rescan failed: %w", err)
	}

	var matched, failed int
	for _, res := range results {
		if res.GetError() != nil {
			failed++
			if verbose {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", res.ReportID, res.Error)
			}
			continue
		}
		if len(res.Candidates) > 0 {
			matched++
			fmt.Printf("%s  %q: %d candidate(s), best %.2f\n",
				res.ReportID, res.Title, len(res.Candidates), res.Candidates[0].Score)
		}
	}

	fmt.Printf("\nRescanned %d report(s) in %v: %d with candidates, %d failed\n",
		len(results), time.Since(start).Round(time.Millisecond), matched, failed)
	return nil
}
