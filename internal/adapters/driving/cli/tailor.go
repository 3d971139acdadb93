package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor [job-description-file]",
	Short: "Write a cover letter for a job description",
	Long: `Picks the stored résumé that best matches the job description and asks the
configured LLM for a cover letter.

The job description, the chosen résumé and the letter are stored together
as a new generation set. Requires an LLM provider (see 'vitae settings').`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&jobText, "text", "", "Job description text")
	tailorCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}

	jd, err := readJobDescription(cmd, args)
	if err != nil {
		return err
	}

	result, err := recommendService.Tailor(context.Background(), jd)
	switch {
	case errors.Is(err, domain.ErrNoResume):
		cmd.Println(emptyResumePrompt)
		return nil
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		return errors.New("text generation is not configured; set one with 'vitae settings set llm.provider ollama'")
	case err != nil:
		return fmt.Errorf("tailoring failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, result)
	}

	cmd.Printf("Generation set: %s\n", result.GroupID)
	cmd.Printf("  Job description: %s\n", result.JobDescription.ID)
	cmd.Printf("  Résumé:          %s\n", result.Resume.ID)
	cmd.Printf("  Cover letter:    %s\n", result.CoverLetter.ID)
	cmd.Println()
	cmd.Println(result.CoverLetter.Text())
	return nil
}
