package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var claimNote string

// claimCmd groups the claim subcommands
var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Submit and decide ownership claims",
}

var claimSubmitCmd = &cobra.Command{
	Use:   "submit <report-id>",
	Short: "Claim a found item by describing its private detail",
	Long: `Submit a claim against a found report. The --note text is compared
against the finder's private note and scored; the score is shown to the
report owner as advice. The owner decides with approve or reject.

Example:
  refind claim submit 4f7c2d1a-... --note "engraved initials J.R. inside"`,
	Args: cobra.ExactArgs(1),
	RunE: runClaimSubmit,
}

var claimApproveCmd = &cobra.Command{
	Use:   "approve <report-id> <claim-id>",
	Short: "Approve a pending claim (owner only)",
	Long: `Approve a pending claim. The report is closed as claimed and any
other pending claims on it are rejected in the same step.`,
	Args: cobra.ExactArgs(2),
	RunE: runClaimApprove,
}

var claimRejectCmd = &cobra.Command{
	Use:   "reject <report-id> <claim-id>",
	Short: "Reject a pending claim (owner only)",
	Args:  cobra.ExactArgs(2),
	RunE:  runClaimReject,
}

var claimListCmd = &cobra.Command{
	Use:   "list [report-id]",
	Short: "List claims on your report, or your own claims without an argument",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClaimList,
}

func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.AddCommand(claimSubmitCmd)
	claimCmd.AddCommand(claimApproveCmd)
	claimCmd.AddCommand(claimRejectCmd)
	claimCmd.AddCommand(claimListCmd)

	claimSubmitCmd.Flags().StringVar(&claimNote, "note", "", "description of the item's private detail (required)")
	_ = claimSubmitCmd.MarkFlagRequired("note")
}

func runClaimSubmit(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	claim, err := eng.SubmitClaim(context.Background(), args[0], actor, claimNote)
	if err != nil {
		return fmt.Errorf("submit claim: %w", err)
	}

	fmt.Printf("Claim submitted: %s (note score %.2f, pending owner review)\n", claim.ID, claim.Score)
	return nil
}

func runClaimApprove(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.ApproveClaim(context.Background(), args[0], args[1], actor); err != nil {
		return fmt.Errorf("approve claim: %w", err)
	}
	fmt.Printf("Claim %s approved; report %s is closed\n", args[1], args[0])
	return nil
}

func runClaimReject(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.RejectClaim(context.Background(), args[0], args[1], actor); err != nil {
		return fmt.Errorf("reject claim: %w", err)
	}
	fmt.Printf("Claim %s rejected; report %s stays open\n", args[1], args[0])
	return nil
}

func runClaimList(cmd *cobra.Command, args []string) error {
	actor, err := actingUser()
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if len(args) == 1 {
		claims, err := eng.ClaimsFor(ctx, args[0], actor)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Println("No claims on this report.")
			return nil
		}
		for _, c := range claims {
			fmt.Printf("%s  claimant=%s  score=%.2f  (%s)\n", c.ID, c.ClaimantID, c.Score, c.Status)
		}
		return nil
	}

	claims, err := eng.MyClaims(ctx, actor)
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		fmt.Println("No claims submitted.")
		return nil
	}
	for _, c := range claims {
		fmt.Printf("%s  report=%s  score=%.2f  (%s)\n", c.ID, c.ReportID, c.Score, c.Status)
	}
	return nil
}
