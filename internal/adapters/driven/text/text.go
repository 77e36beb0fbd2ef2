// Package text holds helpers shared by the instrument text extractors.
//
// Extractors locate a document's file by trying, in order, its instrument
// number, document id and UUID as the file stem.
package text

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// Candidates returns the file stems tried for doc, without duplicates.
func Candidates(doc domain.Document) []string {
	var out []string
	seen := make(map[string]bool)
	for _, stem := range []string{doc.InstrumentNumber, doc.DocumentID, doc.UUID} {
		stem = strings.TrimSpace(stem)
		if stem == "" || seen[stem] || strings.ContainsAny(stem, `/\`) || stem == ".." {
			continue
		}
		seen[stem] = true
		out = append(out, stem)
	}
	return out
}

// Locate returns the first existing regular file dir/<stem><ext> for doc.
func Locate(dir string, doc domain.Document, ext string) (string, error) {
	for _, stem := range Candidates(doc) {
		path := filepath.Join(dir, stem+ext)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no %s file for %s in %s", domain.ErrTextUnavailable, ext, label(doc), dir)
}

func label(doc domain.Document) string {
	if c := Candidates(doc); len(c) > 0 {
		return c[0]
	}
	return "document"
}

// Ensure FirstOf implements the interface.
var _ driven.TextExtractor = (*FirstOf)(nil)

// FirstOf tries extractors in order and returns the first text found.
type FirstOf struct {
	extractors []driven.TextExtractor
}

// NewFirstOf combines extractors. Nil entries are skipped.
func NewFirstOf(extractors ...driven.TextExtractor) *FirstOf {
	f := &FirstOf{}
	for _, e := range extractors {
		if e != nil {
			f.extractors = append(f.extractors, e)
		}
	}
	return f
}

// ExtractText returns the first successful extraction. Context errors stop
// the search; other failures move on to the next extractor.
func (f *FirstOf) ExtractText(ctx context.Context, doc domain.Document) (string, error) {
	var errs []error
	for _, e := range f.extractors {
		text, err := e.ExtractText(ctx, doc)
		if err == nil {
			return text, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("%w: no text extractor configured", domain.ErrTextUnavailable)
	}
	return "", errors.Join(errs...)
}

// Close closes every extractor and joins their errors.
func (f *FirstOf) Close() error {
	var errs []error
	for _, e := range f.extractors {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
