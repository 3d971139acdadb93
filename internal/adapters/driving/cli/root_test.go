package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	localembed "github.com/custodia-labs/vitae/internal/adapters/driven/embedding/local"
	"github.com/custodia-labs/vitae/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/vitae/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/services"
	"github.com/custodia-labs/vitae/internal/normalisers"
)

// stubGenerator writes a fixed cover letter.
type stubGenerator struct {
	letter string
	err    error
}

func (g *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return g.letter, g.err
}

func (g *stubGenerator) ModelName() string            { return "stub" }
func (g *stubGenerator) Ping(_ context.Context) error { return nil }
func (g *stubGenerator) Close() error                 { return nil }

// stubValidator reports fixed validation results.
type stubValidator struct {
	embeddingErr error
	llmErr       error
}

func (v *stubValidator) ValidateEmbedding(_ context.Context, _ *domain.EmbeddingSettings) error {
	return v.embeddingErr
}

func (v *stubValidator) ValidateLLM(_ context.Context, _ *domain.LLMSettings) error {
	return v.llmErr
}

// testServices exposes the pieces tests want to poke at directly.
type testServices struct {
	store     *memory.DocumentStore
	config    *memory.ConfigStore
	generator *stubGenerator
	validator *stubValidator
}

// setupTestServices installs in-memory services and returns a cleanup
// function that removes them and resets command flags.
func setupTestServices(t *testing.T) (*testServices, func()) {
	t.Helper()

	embedder := localembed.NewEmbeddingService(localembed.Config{})
	store := memory.NewDocumentStore(embedder)
	config := memory.NewConfigStore()
	generator := &stubGenerator{letter: "Dear hiring manager,\nI would love to join."}
	validator := &stubValidator{}

	snapshots, err := snapshot.NewStore(filepath.Join(t.TempDir(), snapshot.FileName))
	require.NoError(t, err)

	settingsSvc := services.NewSettingsService(config)
	SetServices(&Services{
		Documents: services.NewDocumentService(store, normalisers.DefaultRegistry()),
		Recommend: services.NewRecommendService(store, embedder, snapshots, generator, services.DefaultRecommendConfig()),
		Settings:  settingsSvc,
		Validator: validator,
	})

	ts := &testServices{store: store, config: config, generator: generator, validator: validator}
	return ts, func() {
		SetServices(nil)
		resetFlags()
	}
}

// resetFlags restores flag variables, since rootCmd is shared across tests.
func resetFlags() {
	verbose = false
	dataDir = ""
	configDir = ""
	documentType = "resume"
	documentGroupID = ""
	watchType = "resume"
	watchDebounce = defaultDebounce
	jobText = ""
	topK = -1
	jsonOutput = false
	relevantIDs = nil
}

// execute runs rootCmd with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "vitae", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commandNames := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, name := range []string{"document", "recommend", "evaluate", "tailor", "snapshot", "settings", "version"} {
		assert.Contains(t, commandNames, name)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "data-dir", "config-dir"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestSetupServices_UsesBootstrap(t *testing.T) {
	defer func() {
		bootstrap = nil
		SetServices(nil)
		resetFlags()
	}()

	var got Options
	closed := false
	bootstrap = func(opts Options) (*Services, error) {
		got = opts
		return &Services{
			Settings: services.NewSettingsService(memory.NewConfigStore()),
			Close:    func() { closed = true },
		}, nil
	}

	_, err := execute(t, "settings", "keys", "--data-dir", "/tmp/vitae-data", "--config-dir", "/tmp/vitae-config")

	require.NoError(t, err)
	assert.Equal(t, Options{DataDir: "/tmp/vitae-data", ConfigDir: "/tmp/vitae-config"}, got)
	assert.True(t, closed)
}

func TestSetupServices_BootstrapError(t *testing.T) {
	defer func() {
		bootstrap = nil
		SetServices(nil)
		resetFlags()
	}()

	bootstrap = func(Options) (*Services, error) {
		return nil, errors.New("database locked")
	}

	_, err := execute(t, "document", "groups")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestSetupServices_VersionSkipsBootstrap(t *testing.T) {
	defer func() {
		bootstrap = nil
		resetFlags()
	}()

	called := false
	bootstrap = func(Options) (*Services, error) {
		called = true
		return nil, errors.New("should not be called")
	}

	_, err := execute(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
}
