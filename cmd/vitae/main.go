// Command vitae stores career documents and recommends résumés for job
// descriptions.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/vitae/internal/adapters/driven/ai"
	"github.com/custodia-labs/vitae/internal/adapters/driven/config/file"
	"github.com/custodia-labs/vitae/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/vitae/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/vitae/internal/adapters/driving/cli"
	"github.com/custodia-labs/vitae/internal/core/services"
	"github.com/custodia-labs/vitae/internal/logger"
	"github.com/custodia-labs/vitae/internal/normalisers"
)

func main() {
	if err := cli.Execute(bootstrap); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the core services.
// Flags win over config.toml, which wins over the built-in defaults.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	aiServices, err := ai.NewServices(*settings)
	if err != nil {
		return nil, err
	}
	for _, warning := range aiServices.Warnings {
		logger.Warn("%s", warning)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.Storage.DataDir
	}
	store, err := sqlite.NewStore(dataDir, sqlite.WithEmbedder(aiServices.Embedding))
	if err != nil {
		aiServices.Close()
		return nil, fmt.Errorf("opening document store: %w", err)
	}
	logger.Debug("Document store: %s", store.Path())

	snapshotPath := settings.Storage.SnapshotPath
	if snapshotPath == "" {
		snapshotPath = filepath.Join(filepath.Dir(store.Path()), snapshot.FileName)
	}
	snapshots, err := snapshot.NewStore(snapshotPath)
	if err != nil {
		aiServices.Close()
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}

	documents := store.DocumentStore()
	return &cli.Services{
		Documents: services.NewDocumentService(documents, normalisers.DefaultRegistry()),
		Recommend: services.NewRecommendService(documents, aiServices.Embedding, snapshots, aiServices.Generator, services.RecommendConfig{
			TopK: settings.Recommend.TopK,
		}),
		Settings:  settingsService,
		Validator: ai.NewConfigValidator(),
		Close:     aiServices.Close,
	}, nil
}
