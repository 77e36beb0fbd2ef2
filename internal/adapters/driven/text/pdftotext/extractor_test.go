package pdftotext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name, m.args = name, args
	return m.output, m.err
}

func pdfDir(t *testing.T, stems ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, s := range stems {
		require.NoError(t, os.WriteFile(filepath.Join(dir, s+".pdf"), []byte("%PDF-1.4 fake"), 0600))
	}
	return dir
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.TextExtractor = (*Extractor)(nil)
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestNewWithRunner(t *testing.T) {
	runner := &mockRunner{}
	e := NewWithRunner("dir", runner)
	require.NotNil(t, e)
	assert.Equal(t, runner, e.runner)
}

func TestExtractText_WithMockRunner(t *testing.T) {
	dir := pdfDir(t, "2020000001")
	runner := &mockRunner{output: []byte("  SATISFACTION OF MORTGAGE\n")}
	e := NewWithRunner(dir, runner)

	got, err := e.ExtractText(context.Background(), domain.Document{InstrumentNumber: "2020000001"})

	require.NoError(t, err)
	assert.Equal(t, "SATISFACTION OF MORTGAGE", got)
	assert.Equal(t, ToolName, runner.name)
	assert.Equal(t, filepath.Join(dir, "2020000001.pdf"), runner.args[len(runner.args)-2])
	assert.Equal(t, "-", runner.args[len(runner.args)-1])
}

func TestExtractText_RunnerError(t *testing.T) {
	e := NewWithRunner(pdfDir(t, "1"), &mockRunner{err: errors.New("pdftotext crashed")})

	_, err := e.ExtractText(context.Background(), domain.Document{InstrumentNumber: "1"})

	assert.ErrorIs(t, err, domain.ErrTextUnavailable)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestExtractText_NoTextLayer(t *testing.T) {
	e := NewWithRunner(pdfDir(t, "1"), &mockRunner{output: []byte("\n\f\n")})

	_, err := e.ExtractText(context.Background(), domain.Document{InstrumentNumber: "1"})

	assert.ErrorIs(t, err, domain.ErrTextUnavailable)
	assert.Contains(t, err.Error(), "no text layer")
}

func TestExtractText_MissingFile(t *testing.T) {
	runner := &mockRunner{output: []byte("text")}
	e := NewWithRunner(pdfDir(t), runner)

	_, err := e.ExtractText(context.Background(), domain.Document{InstrumentNumber: "1"})

	assert.ErrorIs(t, err, domain.ErrTextUnavailable)
	assert.Empty(t, runner.name)
}

func TestExtractText_AfterClose(t *testing.T) {
	e := NewWithRunner(pdfDir(t, "1"), &mockRunner{output: []byte("text")})
	require.NoError(t, e.Close())

	_, err := e.ExtractText(context.Background(), domain.Document{InstrumentNumber: "1"})
	assert.ErrorIs(t, err, domain.ErrExtractorClosed)
}

// Integration test - only runs if pdftotext is available.
func TestNew_Integration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}

	e, err := New(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, e.runner)
}
