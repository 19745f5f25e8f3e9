package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/observability"
	"github.com/jonathan/career-compass/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate assessment answers",
	Long:  "Checks a set of assessment answers against the question bank and reports blocking errors and warnings. Exits non-zero when any blocking error is found.",
	RunE:  runValidate,
}

var (
	validateInput string
	validatePath  string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to answers JSON file (required)")
	validateCmd.Flags().StringVarP(&validatePath, "path", "p", "", "Assessment path; derived from career_direction when empty")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	responses, path, err := loadAnswers(validateInput, validatePath)
	if err != nil {
		return err
	}

	result := assessment.Validate(responses, path)
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(&result)
	} else if err := writeJSON(cmd.OutOrStdout(), "", result); err != nil {
		return err
	}

	if !result.IsValid {
		return fmt.Errorf("answers have %d blocking error(s)", len(result.Errors))
	}
	return nil
}

// loadAnswers reads an answers file and picks the path from the flag or the
// file. An empty path is derived from career_direction downstream.
func loadAnswers(file, flagPath string) (types.Responses, types.PathID, error) {
	responses, filePath, err := readResponses(file)
	if err != nil {
		return nil, "", err
	}
	path := types.PathID(flagPath)
	if path == "" {
		path = filePath
	}
	if path != "" && !path.Valid() {
		return nil, "", fmt.Errorf("unknown path %q", path)
	}
	return responses, path, nil
}
