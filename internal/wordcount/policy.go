// Package wordcount provides the counting policies used by the word-count
// traversal.
package wordcount

import "strings"

// Policy counts the words in a piece of element text.
type Policy interface {
	CountWords(text string) int
}

// Func adapts a function to the Policy interface.
type Func func(text string) int

// CountWords implements Policy.
func (f Func) CountWords(text string) int { return f(text) }

// Whitespace splits on runs of Unicode whitespace and counts the
// non-empty tokens. Empty or whitespace-only text has zero words.
type Whitespace struct{}

// CountWords implements Policy.
func (Whitespace) CountWords(text string) int {
	return len(strings.Fields(text))
}

// Default returns the policy used when none is configured.
func Default() Policy { return Whitespace{} }
