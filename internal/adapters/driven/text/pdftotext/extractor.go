// Package pdftotext extracts instrument text from PDF scans using the
// poppler pdftotext tool.
//
// Image-only scans produce no text layer; those documents are reported
// unavailable and routed to manual review rather than OCR'd here.
package pdftotext

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/titlescan/internal/adapters/driven/text"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// ToolName is the external binary invoked per document.
const ToolName = "pdftotext"

// Ext is the file extension read by the extractor.
const Ext = ".pdf"

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CheckAvailable reports whether pdftotext can be found.
func CheckAvailable() error {
	if _, err := exec.LookPath(ToolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions describes how to install pdftotext.
func InstallInstructions() string {
	return `pdftotext is part of poppler.
  macOS:         brew install poppler
  Debian/Ubuntu: apt install poppler-utils
  Fedora:        dnf install poppler-utils`
}

// Extractor runs pdftotext over <dir>/<stem>.pdf for each document.
type Extractor struct {
	dir    string
	runner CommandRunner
	closed atomic.Bool
}

// New creates an extractor over dir, failing when pdftotext is missing.
func New(dir string) (*Extractor, error) {
	if err := CheckAvailable(); err != nil {
		return nil, err
	}
	return NewWithRunner(dir, execRunner{}), nil
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(dir string, runner CommandRunner) *Extractor {
	return &Extractor{dir: dir, runner: runner}
}

// ExtractText returns the PDF's text layer.
func (e *Extractor) ExtractText(ctx context.Context, doc domain.Document) (string, error) {
	if e.closed.Load() {
		return "", domain.ErrExtractorClosed
	}

	path, err := text.Locate(e.dir, doc, Ext)
	if err != nil {
		return "", err
	}

	out, err := e.runner.Run(ctx, ToolName, "-layout", "-q", "-enc", "UTF-8", path, "-")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: pdftotext failed on %s: %v", domain.ErrTextUnavailable, path, err)
	}

	content := strings.TrimSpace(string(out))
	if content == "" {
		return "", fmt.Errorf("%w: %s has no text layer", domain.ErrTextUnavailable, path)
	}
	return content, nil
}

// Close marks the extractor closed. No process outlives a call.
func (e *Extractor) Close() error {
	e.closed.Store(true)
	return nil
}
