package domain

// RawRecord is a single search result as returned by the registry.
// Field names and value types vary between registry exports, so the
// record is kept as an untyped map until normalisation.
type RawRecord struct {
	// Source identifies where the record came from (file path, database).
	Source string

	// Fields holds the registry's key-value pairs verbatim.
	Fields map[string]any
}

// Get returns the first present value among the given keys.
func (r RawRecord) Get(keys ...string) (any, bool) {
	if r.Fields == nil {
		return nil, false
	}
	for _, k := range keys {
		if v, ok := r.Fields[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
