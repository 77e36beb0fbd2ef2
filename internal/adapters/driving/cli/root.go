// Package cli provides the cobra command tree for titlescan.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
	"github.com/custodia-labs/titlescan/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// errNoFactory is returned when a command runs before SetFactory.
var errNoFactory = errors.New("services not configured")

// SourceOptions selects where records and instrument text come from.
type SourceOptions struct {
	// RecordFiles are JSON exports searched directly. When empty the
	// SQLite snapshot in DBDir is used.
	RecordFiles []string

	// DBDir holds the records.db snapshot. Empty means the default data dir.
	DBDir string

	// TextDir holds pre-extracted <instrument>.txt files.
	TextDir string

	// PDFDir holds <instrument>.pdf files read with pdftotext.
	PDFDir string
}

// Factory builds driving ports for one command invocation.
// Implementations live in cmd/titlescan, which owns adapter wiring.
type Factory interface {
	// Settings opens the settings service over the config in configDir.
	Settings(configDir string) (driving.SettingsService, error)

	// Title builds a title service for the selected sources.
	// The returned closer releases sources and text extractors.
	Title(settings domain.Settings, src SourceOptions) (driving.TitleService, io.Closer, error)

	// Records opens the record snapshot in dbDir.
	Records(dbDir string) (driving.RecordService, io.Closer, error)

	// ReadRecords decodes a registry export file.
	ReadRecords(path string) ([]domain.RawRecord, error)
}

var factory Factory

// SetFactory sets the factory used by all commands.
func SetFactory(f Factory) {
	factory = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "titlescan",
	Short: "Title search over land registry records",
	Long: `titlescan builds a title package for a property owner from land registry
records: the chain of title, open and satisfied mortgages and liens, risk
flags and an overall risk level.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.titlescan)")
}

// Execute runs the root command with ctx, which commands observe for
// cancellation.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// settingsService opens the settings service for the current --config-dir.
func settingsService() (driving.SettingsService, error) {
	if factory == nil {
		return nil, errNoFactory
	}
	return factory.Settings(configDir)
}
