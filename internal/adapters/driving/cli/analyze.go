package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/titlescan/internal/adapters/driving/report"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/logger"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

var (
	analyzeSources SourceOptions
	analyzeScan    bool
	analyzeFormat  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [owner]",
	Short: "Build a title package for an owner",
	Long: `Searches the registry for records naming the owner and builds a title
package: chain of title, mortgage and lien matching, risk flags and an
overall risk level.

Records come from JSON exports (--records) or the local SQLite snapshot
(--db, see "titlescan records import"). With --scan, deeds, mortgages,
satisfactions, liens and releases are read from --text-dir and --pdf-dir
and matched on extracted signals; otherwise matching uses names only.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	addSourceFlags(analyzeCmd, &analyzeSources)
	analyzeCmd.Flags().BoolVar(&analyzeScan, "scan", false, "extract text signals before matching")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatText, "output format: text or json")
	rootCmd.AddCommand(analyzeCmd)
}

// addSourceFlags registers the record and text source flags on cmd.
func addSourceFlags(cmd *cobra.Command, src *SourceOptions) {
	cmd.Flags().StringSliceVar(&src.RecordFiles, "records", nil, "JSON export files to search (repeatable)")
	cmd.Flags().StringVar(&src.DBDir, "db", "", "directory holding the records.db snapshot (default ~/.titlescan/data)")
	cmd.Flags().StringVar(&src.TextDir, "text-dir", "", "directory of <instrument>.txt files")
	cmd.Flags().StringVar(&src.PDFDir, "pdf-dir", "", "directory of <instrument>.pdf files (requires pdftotext)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(analyzeFormat)
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q: use text or json", analyzeFormat)
	}
	if factory == nil {
		return errNoFactory
	}

	settingsSvc, err := factory.Settings(configDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	title, closer, err := factory.Title(*settings, analyzeSources)
	if err != nil {
		return fmt.Errorf("failed to open sources: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn("closing sources: %v", err)
		}
	}()

	pkg, err := title.Analyze(cmd.Context(), domain.AnalyzeRequest{Owner: args[0], Scan: analyzeScan})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if format == formatJSON {
		return outputJSON(cmd, pkg)
	}
	return report.Render(cmd.OutOrStdout(), pkg, stylesFor(cmd))
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// stylesFor colours output only when it goes to a terminal.
func stylesFor(cmd *cobra.Command) *report.Styles {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return report.DefaultStyles()
	}
	return report.PlainStyles()
}
