package text

// stopWords are dropped by Tokenize: articles, conjunctions, prepositions,
// auxiliary verbs and demonstratives.
var stopWords = map[string]struct{}{ //nolint:gochecknoglobals // fixed lookup table
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {},
	"by": {}, "from": {}, "up": {}, "about": {}, "into": {}, "through": {},
	"during": {}, "before": {}, "after": {}, "above": {}, "below": {},
	"between": {}, "among": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// IsStopWord reports whether token is in the stop-word set. Tokens are
// compared as-is; callers lower-case first.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
