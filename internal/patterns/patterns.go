// Package patterns holds the precompiled text-splitting patterns shared by
// the completion layer. They are built once at init and never mutated.
package patterns

import "regexp"

var (
	// Comma separates configuration segments.
	Comma = regexp.MustCompile(",")
	// Equals separates an option key from its value.
	Equals = regexp.MustCompile("=")
	// Pipe separates entries of a literal completion list.
	Pipe = regexp.MustCompile(`\|`)
	// Colon separates a completion handler id from its configuration.
	Colon = regexp.MustCompile(":")
)

// Split splits s around every match of re.
// Unlike strings.Split on an empty string, it always returns one segment.
func Split(re *regexp.Regexp, s string) []string {
	return re.Split(s, -1)
}

// SplitN splits s around at most n-1 matches of re.
func SplitN(re *regexp.Regexp, s string, n int) []string {
	return re.Split(s, n)
}
