package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/observability"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Report assessment completion",
	Long:  "Reports how many required questions a set of answers covers and which question comes next.",
	RunE:  runProgress,
}

var (
	progressInput string
	progressPath  string
)

func init() {
	progressCmd.Flags().StringVarP(&progressInput, "in", "i", "", "Path to answers JSON file (required)")
	progressCmd.Flags().StringVarP(&progressPath, "path", "p", "", "Assessment path; derived from career_direction when empty")

	if err := progressCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, _ []string) error {
	responses, path, err := loadAnswers(progressInput, progressPath)
	if err != nil {
		return err
	}

	result := assessment.Progress(responses, path)
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintProgress(&result)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", result)
}
