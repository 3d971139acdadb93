package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [job-description-file]",
	Short: "Recommend résumés for a job description",
	Long: `Ranks the stored résumés against a job description and prints the best
matches with their cosine similarity.

The job description is read from the given file, from stdin when the file
is "-", or from --text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [job-description-file]",
	Short: "Score a recommendation against known relevant résumés",
	Long: `Recommends résumés for a job description and reports precision, recall and
F1 against the résumé IDs passed with --relevant.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

// Flags shared by the commands that take a job description.
var (
	jobText     string
	topK        int
	jsonOutput  bool
	relevantIDs []string
)

func init() {
	for _, c := range []*cobra.Command{recommendCmd, evaluateCmd} {
		c.Flags().StringVar(&jobText, "text", "", "Job description text")
		c.Flags().IntVarP(&topK, "k", "k", -1, "Number of résumés to recommend (default from settings)")
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	}
	evaluateCmd.Flags().StringSliceVarP(&relevantIDs, "relevant", "r", nil, "IDs of the résumés that should be recommended")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}

	jd, err := readJobDescription(cmd, args)
	if err != nil {
		return err
	}

	ranked, err := recommendService.Rank(context.Background(), jd, resolveK())
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, ranked)
	}

	if len(ranked) == 0 {
		cmd.Println(emptyResumePrompt)
		return nil
	}

	cmd.Printf("Top %d résumé(s):\n\n", len(ranked))
	for i := range ranked {
		doc := &ranked[i].Document
		cmd.Printf("%d. %s  (score %.4f)\n", i+1, doc.ID, ranked[i].Score)
		cmd.Printf("   Uploaded: %s\n", doc.UploadedAt.Local().Format("2006-01-02 15:04:05"))
		cmd.Printf("   %s\n", preview(doc.Text()))
	}
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}
	if len(relevantIDs) == 0 {
		return fmt.Errorf("%w: at least one --relevant id is required", domain.ErrInvalidInput)
	}

	jd, err := readJobDescription(cmd, args)
	if err != nil {
		return err
	}

	eval, err := recommendService.Evaluate(context.Background(), jd, resolveK(), relevantIDs)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, eval)
	}

	cmd.Printf("Precision: %.3f\n", eval.Precision)
	cmd.Printf("Recall:    %.3f\n", eval.Recall)
	cmd.Printf("F1:        %.3f\n", eval.F1)
	return nil
}

// resolveK returns the --k flag, or the configured default when it was not given.
func resolveK() int {
	if topK < 0 {
		return recommendService.DefaultK()
	}
	return topK
}

// readJobDescription takes the job description from --text, stdin ("-")
// or a file, in that order.
func readJobDescription(cmd *cobra.Command, args []string) (string, error) {
	if strings.TrimSpace(jobText) != "" {
		return jobText, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("%w: give a job description file, '-' for stdin, or --text", domain.ErrInvalidInput)
	}

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: job description is empty", domain.ErrInvalidInput)
	}
	return string(data), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
