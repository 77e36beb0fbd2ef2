// Package jsonfile reads registry search exports from disk.
//
// A file may hold a JSON array of records, an object wrapping the array
// under a common key ("records", "results", "documents", "data", "items"),
// or one record per line (.jsonl, .ndjson).
package jsonfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/normalisers/landrecord"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// wrapperKeys are the object keys searched for the record array, in order.
var wrapperKeys = []string{"records", "results", "documents", "data", "items"}

// Source is a RecordSource over one or more export files.
type Source struct {
	paths      []string
	normaliser *landrecord.Normaliser
}

// New creates a source reading paths in order.
func New(paths ...string) *Source {
	return &Source{paths: paths, normaliser: landrecord.New()}
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "jsonfile:" + strings.Join(s.paths, ",")
}

// Search reads every file and returns records naming owner as a party.
func (s *Source) Search(ctx context.Context, owner string) ([]domain.RawRecord, error) {
	out := []domain.RawRecord{}
	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := Read(path)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if s.normaliser.Normalise(r).NamesParty(owner) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// Read parses every record in path.
func Read(path string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	var objects []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		objects, err = decodeLines(data)
	default:
		objects, err = decodeDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}

	records := make([]domain.RawRecord, 0, len(objects))
	for _, obj := range objects {
		records = append(records, domain.RawRecord{Source: path, Fields: obj})
	}
	return records, nil
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func decodeDocument(data []byte) ([]map[string]any, error) {
	var top any
	if err := newDecoder(data).Decode(&top); err != nil {
		return nil, err
	}

	switch v := top.(type) {
	case []any:
		return objectsOf(v), nil
	case map[string]any:
		for _, key := range wrapperKeys {
			if arr, ok := v[key].([]any); ok {
				return objectsOf(arr), nil
			}
		}
		return []map[string]any{v}, nil
	default:
		return nil, fmt.Errorf("expected an array or object, got %T", top)
	}
}

func decodeLines(data []byte) ([]map[string]any, error) {
	var out []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var obj map[string]any
		if err := newDecoder(text).Decode(&obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, obj)
	}
	return out, scanner.Err()
}

// objectsOf keeps the object elements of arr and drops anything else.
func objectsOf(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
