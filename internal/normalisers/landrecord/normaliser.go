// Package landrecord normalises official-records search results into
// domain Documents.
package landrecord

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.RecordNormaliser = (*Normaliser)(nil)

// shortCodePattern captures the first parenthesised token of a doc type label.
var shortCodePattern = regexp.MustCompile(`\(([^()]*)\)`)

// millisecondThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds is in the year 5138.
const millisecondThreshold = 1e11

// Field aliases seen across registry exports, in lookup order.
var (
	keysInstrument = []string{"instrumentNumber", "InstrumentNumber", "instrument_number", "instrument", "Instrument", "cfn", "CFN"}
	keysGrantors   = []string{"grantors", "Grantors", "grantor", "Grantor", "partyOne", "PartyOne", "party1"}
	keysGrantees   = []string{"grantees", "Grantees", "grantee", "Grantee", "partyTwo", "PartyTwo", "party2"}
	keysTimestamp  = []string{"recordTimestamp", "RecordTimestamp", "record_timestamp", "recordDateEpoch", "RecordDateEpoch", "recorded"}
	keysDocType    = []string{"docType", "DocType", "doc_type", "documentType", "DocumentType"}
	keysLegal      = []string{"legalDescription", "LegalDescription", "legal_description", "legal", "Legal"}
	keysPrice      = []string{"salesPrice", "SalesPrice", "sales_price", "salePrice", "consideration", "Consideration"}
	keysPageCount  = []string{"pageCount", "PageCount", "page_count", "pages", "Pages"}
	keysDocumentID = []string{"documentId", "DocumentId", "DocumentID", "document_id", "docId", "id"}
	keysUUID       = []string{"uuid", "UUID", "Uuid", "guid"}
	keysBook       = []string{"bookNum", "BookNum", "book_num", "book", "Book", "bookNumber"}
	keysPage       = []string{"pageNum", "PageNum", "page_num", "page", "Page", "pageNumber"}
)

// Normaliser maps raw registry records to Documents.
type Normaliser struct {
	// newUUID supplies identifiers for records that carry none.
	newUUID func() string
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithUUIDFunc overrides the identifier generator.
func WithUUIDFunc(fn func() string) Option {
	return func(n *Normaliser) {
		if fn != nil {
			n.newUUID = fn
		}
	}
}

// New creates a new land record normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{newUUID: func() string { return uuid.New().String() }}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalise converts a raw record to a Document.
// Missing fields default to empty values; nothing is rejected.
func (n *Normaliser) Normalise(raw domain.RawRecord) domain.Document {
	docType := stringField(raw, keysDocType...)
	ts := timestampField(raw)

	doc := domain.Document{
		InstrumentNumber: stringField(raw, keysInstrument...),
		Grantors:         listField(raw, keysGrantors...),
		Grantees:         listField(raw, keysGrantees...),
		RecordTimestamp:  ts,
		RecordDate:       domain.FormatRecordDate(ts),
		DocType:          docType,
		DocTypeShort:     ShortCode(docType),
		LegalDescription: stringField(raw, keysLegal...),
		SalesPrice:       floatField(raw, keysPrice...),
		PageCount:        intField(raw, keysPageCount...),
		DocumentID:       stringField(raw, keysDocumentID...),
		UUID:             stringField(raw, keysUUID...),
		BookNum:          stringField(raw, keysBook...),
		PageNum:          stringField(raw, keysPage...),
	}

	if doc.UUID == "" {
		doc.UUID = n.newUUID()
	}

	return doc
}

// NormaliseAll converts records in order.
func (n *Normaliser) NormaliseAll(raws []domain.RawRecord) []domain.Document {
	docs := make([]domain.Document, 0, len(raws))
	for i := range raws {
		docs = append(docs, n.Normalise(raws[i]))
	}
	return docs
}

// ShortCode returns the first parenthesised token of docType,
// or docType itself when it has none.
func ShortCode(docType string) string {
	if m := shortCodePattern.FindStringSubmatch(docType); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return docType
}

func stringField(raw domain.RawRecord, keys ...string) string {
	v, ok := raw.Get(keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int64, int32:
		return fmt.Sprintf("%d", t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func listField(raw domain.RawRecord, keys ...string) []string {
	v, ok := raw.Get(keys...)
	if !ok {
		return []string{}
	}

	var items []string
	switch t := v.(type) {
	case []string:
		items = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = strings.Split(t, ";")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func numberField(raw domain.RawRecord, keys ...string) (float64, bool) {
	v, ok := raw.Get(keys...)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return ParseAmount(t)
	default:
		return 0, false
	}
}

func floatField(raw domain.RawRecord, keys ...string) *float64 {
	f, ok := numberField(raw, keys...)
	if !ok {
		return nil
	}
	return &f
}

func intField(raw domain.RawRecord, keys ...string) int {
	f, ok := numberField(raw, keys...)
	if !ok {
		return 0
	}
	return int(f)
}

// timestampField reads epoch seconds. Negative values are instruments
// recorded before 1970.
func timestampField(raw domain.RawRecord) int64 {
	f, ok := numberField(raw, keysTimestamp...)
	if !ok {
		return 0
	}
	if math.Abs(f) > millisecondThreshold {
		f /= 1000
	}
	return int64(f)
}

// RecordKey returns an identity for raw that is stable across imports.
// Records carrying no instrument number, document id or uuid are keyed by
// a hash of their fields.
func RecordKey(raw domain.RawRecord) string {
	doc := domain.Document{
		InstrumentNumber: stringField(raw, keysInstrument...),
		DocumentID:       stringField(raw, keysDocumentID...),
		UUID:             stringField(raw, keysUUID...),
	}
	if key := doc.RecordKey(); key != "" {
		return key
	}
	// encoding/json writes map keys sorted, so equal fields hash equally.
	data, err := json.Marshal(raw.Fields)
	if err != nil {
		data = []byte(fmt.Sprint(raw.Fields))
	}
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// ParseAmount parses a number that may carry a currency sign and separators.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
