package domain

// AnalyzeRequest asks for the title package of one owner.
type AnalyzeRequest struct {
	// Owner is matched case-insensitively against party names.
	Owner string

	// Scan runs text extraction for scannable categories before matching.
	Scan bool
}
