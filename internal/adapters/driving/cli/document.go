package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
)

// previewLength is how many characters of a document list shows.
const previewLength = 60

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `Add, list, view, group, or delete stored career documents.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add documents from files",
	Long: `Extracts the text of each file and stores it as a new document.

Supported formats: plain text, Markdown, HTML, DOCX and PDF.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentAdd,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents of a type",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the newest résumé",
	Args:  cobra.NoArgs,
	RunE:  runDocumentLatest,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentGroupCmd = &cobra.Command{
	Use:   "group [group-id]",
	Short: "Show a generation set",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGroup,
}

var documentGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List generation sets",
	Args:  cobra.NoArgs,
	RunE:  runDocumentGroups,
}

// Flags for document commands.
var (
	documentType    string
	documentGroupID string
)

func init() {
	documentAddCmd.Flags().StringVarP(&documentType, "type", "t", "resume", "Document type (resume, cover-letter, job-description, ...)")
	documentAddCmd.Flags().StringVarP(&documentGroupID, "group", "g", "", "Attach to an existing generation set")
	documentListCmd.Flags().StringVarP(&documentType, "type", "t", "resume", "Document type to list")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentLatestCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentGroupCmd)
	documentCmd.AddCommand(documentGroupsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docType, err := domain.ParseDocumentType(documentType)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, path := range args {
		doc, err := documentService.Upload(ctx, driving.UploadRequest{
			Path:    path,
			Type:    docType,
			GroupID: documentGroupID,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
		cmd.Printf("Added %s as %s: %s\n", path, doc.Type.Description(), doc.ID)
		if !doc.HasEmbedding() {
			cmd.Println("  (stored without embedding)")
		}
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	doc, err := documentService.Get(context.Background(), docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil {
		cmd.Printf("Document not found: %s\n", docID)
		return nil
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	printDocumentInfo(cmd, doc)
	cmd.Println()
	cmd.Println(doc.Text())
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docType, err := domain.ParseDocumentType(documentType)
	if err != nil {
		return err
	}

	docs, err := documentService.ListByType(context.Background(), docType)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		if docType == domain.DocumentTypeResume {
			cmd.Println(emptyResumePrompt)
		} else {
			cmd.Printf("No %s documents stored.\n", strings.ToLower(docType.Description()))
		}
		return nil
	}

	cmd.Printf("%s documents (newest first):\n\n", docType.Description())
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Local().Format("2006-01-02 15:04:05"))
		if docs[i].GroupID != "" {
			cmd.Printf("    Group:    %s\n", docs[i].GroupID)
		}
		cmd.Printf("    Preview:  %s\n", preview(docs[i].Text()))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentLatest(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	text, ok, err := documentService.LatestResume(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get latest résumé: %w", err)
	}
	if !ok {
		cmd.Println(emptyResumePrompt)
		return nil
	}

	cmd.Println(text)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	deleted, err := documentService.Delete(context.Background(), docID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if !deleted {
		cmd.Printf("Document not found: %s\n", docID)
		return nil
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}

func runDocumentGroup(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	groupID := args[0]
	docs, err := documentService.Group(context.Background(), groupID)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	if len(docs) == 0 {
		cmd.Printf("No documents in group: %s\n", groupID)
		return nil
	}

	cmd.Printf("Group %s:\n\n", groupID)
	for i := range docs {
		cmd.Printf("  [%s] %s\n", docs[i].Type.Description(), docs[i].ID)
		cmd.Printf("    %s\n", preview(docs[i].Text()))
	}
	return nil
}

func runDocumentGroups(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	groups, err := documentService.Groups(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	if len(groups) == 0 {
		cmd.Println("No generation sets yet. Create one with 'vitae tailor <job-description>'.")
		return nil
	}

	cmd.Println("Generation sets (most recent first):")
	for _, id := range groups {
		cmd.Printf("  %s\n", id)
	}
	return nil
}

func printDocumentInfo(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("  Type:      %s\n", doc.Type.Description())
	cmd.Printf("  Uploaded:  %s\n", doc.UploadedAt.Local().Format("2006-01-02 15:04:05"))
	if doc.GroupID != "" {
		cmd.Printf("  Group:     %s\n", doc.GroupID)
	}
	if doc.HasEmbedding() {
		cmd.Printf("  Embedding: %d dimensions\n", len(doc.Embedding))
	} else {
		cmd.Println("  Embedding: none")
	}
}

// preview returns the first line of text, shortened to previewLength runes.
func preview(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if len(runes) > previewLength {
		return string(runes[:previewLength-3]) + "..."
	}
	return text
}
