// Package text turns free text into tokens and keyword bags for the
// recommendation scorer.
package text

import (
	"regexp"
	"sort"
	"strings"
)

// minTokenLen is the shortest token kept by Tokenize.
const minTokenLen = 3

// nonWord matches everything that is neither an ASCII word character nor
// whitespace.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Tokenize lower-cases text, replaces punctuation with spaces, splits on
// whitespace and drops short tokens and stop words. The result is never nil.
func Tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLen || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// ExtractKeywords returns up to maxKeywords distinct tokens of text ordered
// by descending frequency. Equal counts keep first-seen order.
func ExtractKeywords(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		return []string{}
	}

	tokens := Tokenize(text)
	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
