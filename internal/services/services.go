package services

import "context"

// Completer produces a text completion. Implementations degrade to a
// human-readable message on failure rather than returning an error.
type Completer interface {
	Complete(ctx context.Context, prompt, system string) string
}

// Searcher returns a plain-text digest of web results, or a sentinel
// message when nothing was found.
type Searcher interface {
	Search(query string) string
}

// truncateRunes cuts s to at most n runes, leaving multi-byte text valid.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
