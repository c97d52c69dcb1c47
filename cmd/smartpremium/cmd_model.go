package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawpanic/smartpremium/internal/pricing"
)

func newModelCmd(a *app) *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Show the fitted risk model",
		Long:  "Prints the least squares coefficients, R² and per-sample fit on the built-in training set",
		Args:  cobra.NoArgs,
		RunE:  a.runModel,
	}

	modelCmd.Flags().Bool("json", false, "Output the model as JSON")

	return modelCmd
}

type modelFit struct {
	Age       int     `json:"age"`
	Claims    int     `json:"claims"`
	Label     float64 `json:"label"`
	Predicted float64 `json:"predicted"`
	Clamped   float64 `json:"clamped"`
}

type modelOutput struct {
	AgeWeight    float64    `json:"age_weight"`
	ClaimsWeight float64    `json:"claims_weight"`
	Intercept    float64    `json:"intercept"`
	RSquared     float64    `json:"r_squared"`
	Samples      []modelFit `json:"samples"`
}

func (a *app) runModel(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	m := a.estimator.Model()

	doc := modelOutput{
		AgeWeight:    m.AgeWeight,
		ClaimsWeight: m.ClaimsWeight,
		Intercept:    m.Intercept,
		RSquared:     m.RSquared(pricing.TrainingSet),
	}
	for _, s := range pricing.TrainingSet {
		doc.Samples = append(doc.Samples, modelFit{
			Age:       s.Age,
			Claims:    s.Claims,
			Label:     s.Risk,
			Predicted: m.Predict(s.Age, s.Claims),
			Clamped:   a.estimator.PredictRisk(s.Age, s.Claims),
		})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "risk = %.6f*age + %.6f*claims %+.6f\n", doc.AgeWeight, doc.ClaimsWeight, doc.Intercept)
	fmt.Fprintf(out, "R²   = %.4f\n\n", doc.RSquared)
	fmt.Fprintf(out, "%4s %6s %6s %9s %7s\n", "AGE", "CLAIMS", "LABEL", "PREDICTED", "CLAMPED")
	for _, s := range doc.Samples {
		fmt.Fprintf(out, "%4d %6d %6.2f %9.4f %7.4f\n", s.Age, s.Claims, s.Label, s.Predicted, s.Clamped)
	}
	return nil
}
