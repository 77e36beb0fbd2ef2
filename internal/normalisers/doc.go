// Package normalisers provides implementations that turn loosely-typed
// registry output into canonical domain entities.
//
// Each registry export names its fields differently; a normaliser knows
// the aliases for one family of exports and never rejects a record.
package normalisers
