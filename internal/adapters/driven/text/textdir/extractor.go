// Package textdir reads pre-extracted instrument text from a directory of
// .txt files, such as the output of an earlier OCR pass.
package textdir

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/custodia-labs/titlescan/internal/adapters/driven/text"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Ext is the file extension read by the extractor.
const Ext = ".txt"

// Extractor reads <dir>/<stem>.txt for each document.
type Extractor struct {
	dir    string
	closed atomic.Bool
}

// New creates an extractor over dir.
func New(dir string) (*Extractor, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("text directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}
	return &Extractor{dir: dir}, nil
}

// ExtractText returns the document's text file contents.
func (e *Extractor) ExtractText(ctx context.Context, doc domain.Document) (string, error) {
	if e.closed.Load() {
		return "", domain.ErrExtractorClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := text.Locate(e.dir, doc, Ext)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", domain.ErrTextUnavailable, path, err)
	}
	return string(data), nil
}

// Close marks the extractor closed.
func (e *Extractor) Close() error {
	e.closed.Store(true)
	return nil
}
