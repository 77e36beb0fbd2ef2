package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/logger"
)

var recordsDBDir string

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the local record snapshot",
	Long: `Load registry exports into a local SQLite snapshot that
"titlescan analyze" searches when no --records files are given.`,
}

var recordsImportCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import JSON exports into the snapshot",
	Long: `Imports registry search results into the snapshot. Files may hold a JSON
array, an object wrapping one (records, results, documents, data or items),
a single record, or one record per line (.jsonl, .ndjson). Records already
in the snapshot are replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecordsImport,
}

var recordsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count records in the snapshot",
	Args:  cobra.NoArgs,
	RunE:  runRecordsCount,
}

func init() {
	recordsCmd.PersistentFlags().StringVar(&recordsDBDir, "db", "", "directory holding the records.db snapshot (default ~/.titlescan/data)")
	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsCountCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsImport(cmd *cobra.Command, args []string) error {
	if factory == nil {
		return errNoFactory
	}

	var raws []domain.RawRecord
	for _, path := range args {
		batch, err := factory.ReadRecords(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		logger.Debug("%s: %d records", path, len(batch))
		raws = append(raws, batch...)
	}

	records, closer, err := factory.Records(recordsDBDir)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}

	n, importErr := records.Import(cmd.Context(), raws)
	closeErr := closer.Close()
	if err := errors.Join(importErr, closeErr); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %d file(s).\n", n, len(args))
	return nil
}

func runRecordsCount(cmd *cobra.Command, _ []string) error {
	if factory == nil {
		return errNoFactory
	}

	records, closer, err := factory.Records(recordsDBDir)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer closer.Close() //nolint:errcheck

	n, err := records.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", n)
	return nil
}
