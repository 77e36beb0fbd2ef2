package extractors

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Rule turns a regular expression match into a typed value.
type Rule[T any] struct {
	// Name identifies the rule in results and tests.
	Name string

	// Pattern is matched against upper-cased text.
	Pattern *regexp.Regexp

	// Transform builds a value from the submatches.
	// Returning false skips this match.
	Transform func(m []string) (T, bool)
}

// Chain is an ordered, first-match-wins list of rules for one field.
type Chain[T any] struct {
	Rules []Rule[T]

	// Accept is the field's sanity filter. Nil accepts everything.
	Accept func(T) bool
}

// Apply returns the first accepted value and the name of the rule that
// produced it. Every match of a rule is tried before moving to the next rule.
func (c Chain[T]) Apply(text string) (T, string, bool) {
	var zero T
	for _, r := range c.Rules {
		for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
			v, ok := r.Transform(m)
			if !ok {
				continue
			}
			if c.Accept != nil && !c.Accept(v) {
				continue
			}
			return v, r.Name, true
		}
	}
	return zero, "", false
}

// Collect gathers every non-overlapping match of every rule, de-duplicated,
// in rule order then text order.
func Collect(text string, rules []Rule[string]) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range rules {
		for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
			v, ok := r.Transform(m)
			if !ok || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// group returns a transform yielding the trimmed nth submatch.
func group(n int) func([]string) (string, bool) {
	return func(m []string) (string, bool) {
		if len(m) <= n {
			return "", false
		}
		s := cleanCapture(m[n])
		return s, s != ""
	}
}

// whole returns a transform yielding the trimmed full match.
func whole(limit int) func([]string) (string, bool) {
	return func(m []string) (string, bool) {
		s := strings.Join(strings.Fields(m[0]), " ")
		s = strings.TrimRight(s, " ,;.")
		if limit > 0 && len(s) > limit {
			s = strings.TrimSpace(s[:limit])
		}
		return s, s != ""
	}
}

// amountGroup returns a transform parsing the nth submatch as dollars.
func amountGroup(n int) func([]string) (float64, bool) {
	return func(m []string) (float64, bool) {
		if len(m) <= n {
			return 0, false
		}
		return parseDollars(m[n])
	}
}

// bookPage renders a book/page pair from two submatches.
func bookPage(book, page int) func([]string) (string, bool) {
	return func(m []string) (string, bool) {
		if len(m) <= page || m[book] == "" || m[page] == "" {
			return "", false
		}
		return FormatBookPage(m[book], m[page]), true
	}
}

// FormatBookPage renders a book/page cross-reference.
func FormatBookPage(book, page string) string {
	return "Book " + strings.TrimSpace(book) + ", Page " + strings.TrimSpace(page)
}

// fixed returns a transform yielding a constant, used by phrase rules.
func fixed(value string) func([]string) (string, bool) {
	return func([]string) (string, bool) { return value, true }
}

func parseDollars(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func cleanCapture(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " ,;:.-")
}

// between builds an amount filter with inclusive bounds. A zero max means unbounded.
func between(minimum, maximum float64) func(float64) bool {
	return func(v float64) bool {
		if v < minimum {
			return false
		}
		return maximum == 0 || v <= maximum
	}
}

// normaliseText upper-cases text and collapses horizontal whitespace.
func normaliseText(text string) string {
	text = strings.ToUpper(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return horizontalSpace.ReplaceAllString(text, " ")
}

var horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)

