// Package extractors recovers structured fields from recorded-instrument text.
//
// Each field is served by an ordered chain of pattern rules evaluated
// first-match-wins against upper-cased text: the first rule yielding a
// value that passes the field's sanity check wins and later rules are not
// tried. Cross-reference fields instead collect every match.
//
// Rule chains are plain data (see Rule and Chain) so that patterns and
// filters can be exercised independently of the matcher.
package extractors
