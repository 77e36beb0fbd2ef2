// Package file persists settings overrides in ~/.titlescan/config.toml.
//
// Dotted keys such as "matcher.weight.amount" are stored as nested TOML
// tables, so the file can also be edited by hand.
package file
