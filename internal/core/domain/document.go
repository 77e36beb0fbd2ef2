package domain

import (
	"strings"
	"time"
)

// RecordDateLayout is the display format for Document.RecordDate.
const RecordDateLayout = "01/02/2006"

// Document is the canonical representation of a recorded instrument
// after normalisation. It is treated as immutable; the only permitted
// change is attaching ExtractedData via WithExtractedData.
type Document struct {
	// InstrumentNumber is the recording office's identifier.
	InstrumentNumber string `json:"instrumentNumber"`

	// Grantors are the parties conveying an interest, in registry order.
	Grantors []string `json:"grantors"`

	// Grantees are the parties receiving an interest, in registry order.
	Grantees []string `json:"grantees"`

	// RecordTimestamp is seconds since epoch. It is the authoritative sort key.
	RecordTimestamp int64 `json:"recordTimestamp"`

	// RecordDate is RecordTimestamp formatted for display.
	RecordDate string `json:"recordDate"`

	// DocType is the registry's full category label, e.g. "MORTGAGE (MTG)".
	DocType string `json:"docType"`

	// DocTypeShort is the parenthetical code from DocType, or DocType itself.
	DocTypeShort string `json:"docTypeShort"`

	LegalDescription string   `json:"legalDescription"`
	SalesPrice       *float64 `json:"salesPrice"`
	PageCount        int      `json:"pageCount"`
	DocumentID       string   `json:"documentId"`
	UUID             string   `json:"uuid"`
	BookNum          string   `json:"bookNum"`
	PageNum          string   `json:"pageNum"`

	// ExtractedData is attached after text extraction, nil otherwise.
	ExtractedData *ExtractedData `json:"extractedData,omitempty"`
}

// WithExtractedData returns a copy of the document carrying data.
func (d Document) WithExtractedData(data *ExtractedData) Document {
	d.ExtractedData = data
	return d
}

// RecordTime returns RecordTimestamp as a UTC time.
func (d Document) RecordTime() time.Time {
	return time.Unix(d.RecordTimestamp, 0).UTC()
}

// HasBookPage reports whether both book and page numbers are known.
func (d Document) HasBookPage() bool {
	return strings.TrimSpace(d.BookNum) != "" && strings.TrimSpace(d.PageNum) != ""
}

// NeedsManualReview reports whether extraction flagged this document.
func (d Document) NeedsManualReview() bool {
	return d.ExtractedData != nil && d.ExtractedData.NeedsManualReview
}

// FormatRecordDate renders an epoch-seconds timestamp for display.
// A zero timestamp means the date is unknown and yields an empty string.
func FormatRecordDate(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(RecordDateLayout)
}

// FirstToken returns the first whitespace-delimited token of name, upper-cased.
func FirstToken(name string) string {
	fields := strings.Fields(strings.ToUpper(name))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ",.;")
}

// NamesParty reports whether owner appears, case-insensitively, within any
// grantor or grantee name. An empty owner matches every document.
func (d Document) NamesParty(owner string) bool {
	owner = strings.ToUpper(strings.TrimSpace(owner))
	if owner == "" {
		return true
	}
	for _, names := range [][]string{d.Grantors, d.Grantees} {
		for _, n := range names {
			if strings.Contains(strings.ToUpper(n), owner) {
				return true
			}
		}
	}
	return false
}

// RecordKey identifies a record across imports: the instrument number and
// document id when either is known, else the UUID.
func (d Document) RecordKey() string {
	if d.InstrumentNumber == "" && d.DocumentID == "" {
		return d.UUID
	}
	return d.InstrumentNumber + "|" + d.DocumentID
}
