package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/observability"
	"github.com/jonathan/career-compass/internal/pipeline"
	"github.com/jonathan/career-compass/internal/schemas"
	"github.com/jonathan/career-compass/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match assessment answers against the career catalog",
	Long:  "Validates a set of assessment answers, builds the student profile, ranks careers and produces pathway recommendations as a SubmissionResult JSON.",
	RunE:  runMatch,
}

var (
	matchInput  string
	matchPath   string
	matchLimit  int
	matchOutput string
)

func init() {
	matchCmd.Flags().StringVarP(&matchInput, "in", "i", "", "Path to answers JSON file (required)")
	matchCmd.Flags().StringVarP(&matchPath, "path", "p", "", "Assessment path (path_a, path_b, path_c); derived from career_direction when empty")
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 0, "Maximum number of matches (default matching.default_limit)")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := matchCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	responses, filePath, err := readResponses(matchInput)
	if err != nil {
		return err
	}
	path := types.PathID(matchPath)
	if path == "" {
		path = filePath
	}
	if matchLimit < 0 || matchLimit > 25 {
		return fmt.Errorf("--limit must be between 0 and 25")
	}

	opts := wireOptions{}
	var printer *observability.Printer
	if verbose {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		opts.progress = func(e pipeline.ProgressEvent) {
			printer.PrintStep(e.Step, e.Message)
		}
	}

	rt, err := wire(context.Background(), appConfig, appLogger, opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.service.Submit(cmd.Context(), responses, path, matchLimit)
	if err != nil {
		var invalid *pipeline.InvalidInputError
		if printer != nil && errors.As(err, &invalid) && invalid.Validation != nil {
			printer.PrintValidation(invalid.Validation)
		}
		return fmt.Errorf("failed to match careers: %w", err)
	}

	if printer != nil {
		printer.PrintProfile(&result.Profile)
		printer.PrintMatches(result.Matches)
		printer.PrintRecommendations(&result.Recommendations)
	}

	// schema failures are reported but not fatal
	if err := schemas.ValidateValue(schemas.Submission, result); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}
	if err := writeJSON(cmd.OutOrStdout(), matchOutput, result); err != nil {
		return err
	}

	if matchOutput != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully matched %d careers to %s\n", len(result.Matches), matchOutput)
	}
	return nil
}
