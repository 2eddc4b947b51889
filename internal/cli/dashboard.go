package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show open report and claim counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := eng.Dashboard(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Open lost reports:   %d\n", stats.TotalLost)
		fmt.Printf("Open found reports:  %d\n", stats.TotalFound)
		fmt.Printf("Claims submitted:    %d\n", stats.TotalClaims)
		fmt.Printf("Claims approved:     %d\n", stats.ApprovedClaims)
		fmt.Printf("Success ratio:       %.1f%%\n", stats.SuccessRatio)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
