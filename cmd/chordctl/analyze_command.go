package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sammywachtel/harmonia-api/internal/analysis/interpretation"
)

func newAnalyzeCommand() *cobra.Command {
	var parentKey string
	var level string
	var threshold float64
	var maxAlternatives int
	var forceAlternatives bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [chords...]",
		Short: "Analyze a chord progression",
		Long: `Analyze a chord progression and print the ranked interpretations.

Chords are given as symbols, for example:

  chordctl analyze Dm G7 Cmaj7 --key "C major"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := interpretation.Options{
				ParentKey:                    parentKey,
				PedagogicalLevel:             interpretation.PedagogicalLevel(level),
				ConfidenceThreshold:          threshold,
				MaxAlternatives:              maxAlternatives,
				ForceMultipleInterpretations: forceAlternatives,
			}

			service := interpretation.NewService()
			result, err := service.Analyze(cmd.Context(), args, opts)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", strings.Join(args, " "), err)
			}

			if asJSON {
				encoded, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parentKey, "key", "k", "", `Parent key hint, e.g. "C major"`)
	cmd.Flags().StringVar(&level, "level", "intermediate", "Pedagogical level: beginner, intermediate, advanced")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum confidence for alternatives (default 0.5)")
	cmd.Flags().IntVar(&maxAlternatives, "max-alternatives", 0, "Maximum number of alternatives (default 3)")
	cmd.Flags().BoolVar(&forceAlternatives, "all", false, "Always show alternatives regardless of level")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")

	return cmd
}

func printResult(cmd *cobra.Command, result *interpretation.Result) {
	out := cmd.OutOrStdout()
	p := result.Primary

	fmt.Fprintf(out, "Progression: %s\n\n", strings.Join(result.InputChords, " "))
	fmt.Fprintf(out, "Primary: %s (%.0f%% confidence)\n", p.Type, p.Confidence*100)
	printInterpretation(cmd, p)

	if !result.Metadata.ShowAlternatives || len(result.Alternatives) == 0 {
		return
	}

	fmt.Fprintln(out, "\nAlternatives:")
	for _, alt := range result.Alternatives {
		fmt.Fprintf(out, "\n  %s (%.0f%% confidence): %s\n",
			alt.Type, alt.Confidence*100, alt.RelationshipToPrimary)
		printInterpretation(cmd, alt.Interpretation)
	}
}

func printInterpretation(cmd *cobra.Command, interp interpretation.Interpretation) {
	out := cmd.OutOrStdout()

	if len(interp.RomanNumerals) > 0 {
		fmt.Fprintf(out, "  Numerals: %s\n", strings.Join(interp.RomanNumerals, " - "))
	}
	if interp.KeySignature != "" {
		fmt.Fprintf(out, "  Key:      %s\n", interp.KeySignature)
	}
	if interp.Mode != "" {
		fmt.Fprintf(out, "  Mode:     %s\n", interp.Mode)
	}
	if interp.Reasoning != "" {
		fmt.Fprintf(out, "  Why:      %s\n", interp.Reasoning)
	}
	for _, ev := range interp.Evidence {
		fmt.Fprintf(out, "    - [%s %.2f] %s\n", ev.Type, ev.Strength, ev.Description)
	}
}
