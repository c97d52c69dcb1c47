package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawpanic/smartpremium/internal/pricing"
)

func newEstimateCmd(a *app) *cobra.Command {
	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price a single applicant without prompting",
		Long: `Price one applicant from flags. Applicants under the minimum age or with a
negative claim count are turned away with the same message the interactive
estimator prints.

Examples:
  smartpremium estimate --age 35 --claims 1
  smartpremium estimate --age 47 --claims 2 --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: a.runEstimate,
	}

	estimateCmd.Flags().Int("age", 0, "Applicant age in years (required)")
	estimateCmd.Flags().Int("claims", 0, "Claims filed in the past 5 years")
	estimateCmd.Flags().Bool("json", false, "Output the quote as JSON")
	_ = estimateCmd.MarkFlagRequired("age")

	return estimateCmd
}

// estimateOutput is the --json document
type estimateOutput struct {
	Quote     *pricing.Quote `json:"quote,omitempty"`
	Rejected  bool           `json:"rejected"`
	Reason    string         `json:"reason,omitempty"`
	Message   string         `json:"message,omitempty"`
	Breakdown string         `json:"breakdown,omitempty"`
}

func (a *app) runEstimate(cmd *cobra.Command, args []string) error {
	age, _ := cmd.Flags().GetInt("age")
	claims, _ := cmd.Flags().GetInt("claims")
	asJSON, _ := cmd.Flags().GetBool("json")

	var doc estimateOutput
	req := pricing.Request{Age: age, Claims: claims}
	if rej := req.Validate(a.cfg.MinAge); rej != nil {
		a.metrics.RecordRejection(rej.Reason)
		doc = estimateOutput{Rejected: true, Reason: rej.Reason, Message: rej.Message}
	} else {
		q := a.estimator.Estimate(age, claims)
		a.metrics.RecordQuote(q.Risk, q.MarketFactor)
		doc = estimateOutput{Quote: &q, Breakdown: q.Breakdown()}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode quote: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if doc.Rejected {
		fmt.Fprintln(out, doc.Message)
		return nil
	}
	fmt.Fprintln(out, doc.Breakdown)
	return nil
}
