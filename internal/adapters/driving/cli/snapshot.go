package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect the retrieval snapshot",
	Long:  `Every recommendation writes the fitted retrieval state to a snapshot file.`,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last snapshot",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotShow,
}

func init() {
	snapshotCmd.AddCommand(snapshotShowCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotShow(cmd *cobra.Command, _ []string) error {
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}

	snap, err := recommendService.LastSnapshot(context.Background())
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		cmd.Println("No snapshot yet. Run 'vitae recommend' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	cmd.Println("Snapshot")
	cmd.Println("========")
	cmd.Printf("  Created:   %s\n", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if snap.Model != "" {
		cmd.Printf("  Model:     %s\n", snap.Model)
	}
	cmd.Printf("  Documents: %d\n", snap.Len())
	cmd.Println()

	for i := range snap.Documents {
		dims := 0
		if i < len(snap.Embeddings) {
			dims = len(snap.Embeddings[i])
		}
		status := fmt.Sprintf("%d dimensions", dims)
		if dims == 0 {
			status = "not embedded"
		}
		cmd.Printf("  %s  %s  (%s)\n", snap.Documents[i].ID, snap.Documents[i].Type.Description(), status)
	}
	return nil
}
