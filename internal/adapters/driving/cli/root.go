// Package cli is the cobra command tree of the vitae binary.
//
// Commands talk to the core only through the driving ports. The services
// are built lazily by a Bootstrap function once flags are parsed, so that
// --data-dir and --config-dir can shape the wiring.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
	"github.com/custodia-labs/vitae/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// skipServices marks commands that run without the core services.
const skipServices = "skip-services"

// emptyResumePrompt is shown whenever a command needs a résumé and none is stored.
const emptyResumePrompt = "No résumé stored yet. Upload one with 'vitae document add --type resume <file>'."

// Options carries the global flags into a Bootstrap.
type Options struct {
	DataDir   string
	ConfigDir string
}

// Services bundles everything the commands call into.
type Services struct {
	Documents driving.DocumentService
	Recommend driving.RecommendService
	Settings  driving.SettingsService

	// Validator pings configured AI providers. Optional.
	Validator ProviderValidator

	// Close releases the services. Optional.
	Close func()
}

// ProviderValidator checks that configured AI providers are reachable.
type ProviderValidator interface {
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error
	ValidateLLM(ctx context.Context, config *domain.LLMSettings) error
}

// Bootstrap builds the services from the parsed global flags.
type Bootstrap func(opts Options) (*Services, error)

var (
	documentService   driving.DocumentService
	recommendService  driving.RecommendService
	settingsService   driving.SettingsService
	providerValidator ProviderValidator
	closeServices     func()

	bootstrap Bootstrap
)

// Global flags.
var (
	verbose   bool
	dataDir   string
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "vitae",
	Short: "Career document store and résumé recommender",
	Long: `vitae stores résumés, cover letters and job descriptions, and recommends
the stored résumés that best match a job description.

Documents are embedded when saved. Recommendations run a small retrieval
pipeline (clean, ingest, train, predict) and leave a snapshot of the fitted
state behind for inspection.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the document database (default ~/.vitae/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.toml (default ~/.vitae)")
}

// SetServices installs already-built services, bypassing any Bootstrap.
func SetServices(svc *Services) {
	if svc == nil {
		documentService = nil
		recommendService = nil
		settingsService = nil
		providerValidator = nil
		closeServices = nil
		return
	}
	documentService = svc.Documents
	recommendService = svc.Recommend
	settingsService = svc.Settings
	providerValidator = svc.Validator
	closeServices = svc.Close
}

// Execute runs the command tree. boot is called once flags are parsed,
// unless services were installed with SetServices.
func Execute(boot Bootstrap) error {
	bootstrap = boot
	return rootCmd.Execute()
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipServices] != "" || bootstrap == nil || documentService != nil {
		return nil
	}

	svc, err := bootstrap(Options{DataDir: dataDir, ConfigDir: configDir})
	if err != nil {
		return err
	}
	SetServices(svc)
	return nil
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if closeServices != nil {
		closeServices()
		closeServices = nil
	}
	return nil
}
