package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/titlescan/internal/adapters/driven/config/file"
	"github.com/custodia-labs/titlescan/internal/adapters/driven/records/jsonfile"
	"github.com/custodia-labs/titlescan/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/titlescan/internal/adapters/driven/text"
	"github.com/custodia-labs/titlescan/internal/adapters/driven/text/pdftotext"
	"github.com/custodia-labs/titlescan/internal/adapters/driven/text/ratelimit"
	"github.com/custodia-labs/titlescan/internal/adapters/driven/text/textdir"
	"github.com/custodia-labs/titlescan/internal/adapters/driving/cli"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
	"github.com/custodia-labs/titlescan/internal/core/services"
	"github.com/custodia-labs/titlescan/internal/logger"
	"github.com/custodia-labs/titlescan/internal/normalisers/landrecord"
)

// Ensure factory implements the interface.
var _ cli.Factory = (*factory)(nil)

// factory connects driven adapters to core services.
type factory struct{}

// closers releases resources in reverse order of acquisition.
type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		errs = append(errs, c[i].Close())
	}
	return errors.Join(errs...)
}

func (factory) Settings(configDir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return services.NewSettingsService(store), nil
}

func (f factory) Title(settings domain.Settings, src cli.SourceOptions) (driving.TitleService, io.Closer, error) {
	var open closers

	var source driven.RecordSource
	if len(src.RecordFiles) > 0 {
		source = jsonfile.New(src.RecordFiles...)
	} else {
		store, err := sqlite.NewStore(src.DBDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open snapshot: %w", err)
		}
		open = append(open, store)
		source = store.RecordStore()
	}

	opts := []services.TitleOption{services.WithSettings(settings)}

	extractor, err := textExtractor(src)
	if err != nil {
		return nil, nil, errors.Join(err, open.Close())
	}
	if extractor != nil {
		limited := ratelimit.Wrap(extractor, ratelimit.Config{
			RequestsPerSecond: settings.Scan.RatePerSecond,
			BurstSize:         settings.Scan.Burst,
		})
		open = append(open, limited)
		opts = append(opts, services.WithTextExtractor(limited))
	}

	logger.Debug("record source: %s", source.Name())
	return services.NewTitleService(source, landrecord.New(), opts...), open, nil
}

// textExtractor combines the configured text sources, preferring
// pre-extracted text over PDFs. Returns nil when none is configured.
func textExtractor(src cli.SourceOptions) (driven.TextExtractor, error) {
	var extractors []driven.TextExtractor

	if src.TextDir != "" {
		e, err := textdir.New(src.TextDir)
		if err != nil {
			return nil, fmt.Errorf("open text dir: %w", err)
		}
		extractors = append(extractors, e)
	}

	if src.PDFDir != "" {
		e, err := pdftotext.New(src.PDFDir)
		if err != nil {
			for _, opened := range extractors {
				opened.Close() //nolint:errcheck
			}
			return nil, fmt.Errorf("%w\n%s", err, pdftotext.InstallInstructions())
		}
		extractors = append(extractors, e)
	}

	switch len(extractors) {
	case 0:
		return nil, nil
	case 1:
		return extractors[0], nil
	default:
		return text.NewFirstOf(extractors...), nil
	}
}

func (factory) Records(dbDir string) (driving.RecordService, io.Closer, error) {
	store, err := sqlite.NewStore(dbDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	return services.NewRecordService(store.RecordStore()), store, nil
}

func (factory) ReadRecords(path string) ([]domain.RawRecord, error) {
	return jsonfile.Read(path)
}
