package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
	"github.com/custodia-labs/vitae/internal/logger"
)

// defaultDebounce is how long a file must stay quiet before it is ingested.
// Editors write a file in several steps; only the settled file is stored.
const defaultDebounce = 500 * time.Millisecond

var documentWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Add files as they appear in a directory",
	Long: `Watches a directory and stores every file created or rewritten in it.

Hidden files and subdirectories are ignored. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentWatch,
}

// Flags for the watch command.
var (
	watchType     string
	watchDebounce time.Duration
)

func init() {
	documentWatchCmd.Flags().StringVarP(&watchType, "type", "t", "resume", "Document type of ingested files")
	documentWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", defaultDebounce, "Quiet period before a changed file is ingested")
	documentCmd.AddCommand(documentWatchCmd)
}

func runDocumentWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docType, err := domain.ParseDocumentType(watchType)
	if err != nil {
		return err
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := newFileWatcher(watchDebounce, func(ctx context.Context, path string) error {
		doc, err := documentService.Upload(ctx, driving.UploadRequest{Path: path, Type: docType})
		if err != nil {
			return err
		}
		cmd.Printf("Added %s as %s: %s\n", path, doc.Type.Description(), doc.ID)
		return nil
	})

	cmd.Printf("Watching %s for new %s files. Press Ctrl+C to stop.\n", dir, strings.ToLower(docType.Description()))
	return w.run(ctx, fsw.Events, fsw.Errors)
}

// fileWatcher turns bursts of filesystem events into one ingest per file.
type fileWatcher struct {
	debounce time.Duration
	ingest   func(ctx context.Context, path string) error

	// pending maps a path to the time of its last event.
	pending map[string]time.Time
}

func newFileWatcher(debounce time.Duration, ingest func(ctx context.Context, path string) error) *fileWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &fileWatcher{
		debounce: debounce,
		ingest:   ingest,
		pending:  make(map[string]time.Time),
	}
}

// handleEvent records a create or write of a regular, visible file.
// It reports whether the event was kept.
func (w *fileWatcher) handleEvent(event fsnotify.Event, now time.Time) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return false
	}
	w.pending[event.Name] = now
	return true
}

// due removes and returns the pending paths that have been quiet for the
// debounce period, sorted.
func (w *fileWatcher) due(now time.Time) []string {
	var paths []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (w *fileWatcher) flush(ctx context.Context, now time.Time) {
	for _, path := range w.due(now) {
		if err := w.ingest(ctx, path); err != nil {
			logger.Error("ingesting %s: %v", path, err)
		}
	}
}

// run consumes events until ctx is done or the event channel closes.
// Ingest failures are logged and do not stop the watch.
func (w *fileWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				w.flush(ctx, time.Now().Add(w.debounce))
				return nil
			}
			if w.handleEvent(event, time.Now()) {
				logger.Debug("Change detected: %s", event.Name)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error: %v", err)
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}
