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
	reportDesc     string
	reportLocation string
	reportNote     string
	reportImage    string
	reportTimeout  time.Duration
)

// reportCmd groups the report subcommands
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Create and manage lost/found reports",
}

var reportAddCmd = &cobra.Command{
	Use:   "add <lost|found> <title>",
	Short: "File a new report and match it against the existing pool",
	Long: `File a lost or found report. Matching against reports of the opposite
status starts immediately in the background; owners of admitted
candidates are notified with masked hints only.

For found items, --note records a private detail about the item that
only you can see. Claimants must describe it to prove ownership.

Example:
  refind report add lost "Black leather wallet" --desc "two card slots" --location "Main Library"
  refind report add found "Black wallet" --note "engraved initials J.R. inside"`,
	Args: cobra.ExactArgs(2),
	RunE: runReportAdd,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your reports with the latest claim on each",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show one report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

var reportStatusCmd = &cobra.Command{
	Use:   "status <report-id> <lost|found|claimed>",
	Short: "Change a report's status (owner only)",
	Args:  cobra.ExactArgs(2),
	RunE:  runReportStatus,
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Delete a report (owner only, refused while claims are live)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportAddCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportStatusCmd)
	reportCmd.AddCommand(reportDeleteCmd)

	reportAddCmd.Flags().StringVar(&reportDesc, "desc", "", "item description")
	reportAddCmd.Flags().StringVar(&reportLocation, "location", "", "where the item was lost or found")
	reportAddCmd.Flags().StringVar(&reportNote, "note", "", "private note for claim verification (found items)")
	reportAddCmd.Flags().StringVar(&reportImage, "image", "", "reference to an externally stored image")
	reportAddCmd.Flags().DurationVar(&reportTimeout, "timeout", 3*time.Minute, "overall timeout, background matching included")
}

func runReportAdd(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	report := &model.Report{
		Title:       args[1],
		Description: reportDesc,
		Location:    reportLocation,
		Status:      model.Status(args[0]),
		PrivateNote: reportNote,
		OwnerID:     actor,
		ImageRef:    reportImage,
	}
	if err := eng.CreateReport(ctx, report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	fmt.Printf("Report created: %s\n", report.ID)
	if verbose {
		fmt.Fprintf(os.Stderr, "Matching against the %s pool runs in the background\n", report.Status.Opposite())
	}
	return nil
}

func runReportList(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	items, err := eng.MyItems(context.Background(), actor)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No reports.")
		return nil
	}

	for _, item := range items {
		r := item.Report
		fmt.Printf("%s  [%s]  %s\n", r.ID, r.Status, r.Title)
		if r.Location != "" {
			fmt.Printf("    location: %s\n", r.Location)
		}
		if item.LatestClaim != nil {
			c := item.LatestClaim
			fmt.Printf("    latest claim: %s  score=%.2f  (%s)\n", c.ID, c.Score, c.Status)
		}
	}
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	r, err := eng.GetReport(context.Background(), args[0])
	if err != nil {
		return err
	}

	actor, _ := actingUser()
	fmt.Printf("ID:          %s\n", r.ID)
	fmt.Printf("Title:       %s\n", r.Title)
	fmt.Printf("Status:      %s\n", r.Status)
	if r.Description != "" {
		fmt.Printf("Description: %s\n", r.Description)
	}
	if r.Location != "" {
		fmt.Printf("Location:    %s\n", r.Location)
	}
	if r.ImageRef != "" {
		fmt.Printf("Image:       %s\n", r.ImageRef)
	}
	fmt.Printf("Owner:       %s\n", r.OwnerID)
	fmt.Printf("Created:     %s\n", r.CreatedAt.Local().Format(time.RFC1123))
	// The private note stays private to the owner.
	if r.PrivateNote != "" && actor == r.OwnerID {
		fmt.Printf("Private note: %s\n", r.PrivateNote)
	}
	return nil
}

func runReportStatus(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.UpdateStatus(context.Background(), args[0], actor, model.Status(args[1])); err != nil {
		return err
	}
	fmt.Printf("Report %s is now %s\n", args[0], args[1])
	return nil
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.DeleteReport(context.Background(), args[0], actor); err != nil {
		return err
	}
	fmt.Printf("Report %s deleted\n", args[0])
	return nil
}
