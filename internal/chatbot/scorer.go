package chatbot

import (
	"sort"
	"strings"
)

// TopK is how many entries the relay always forwards as model context,
// regardless of score, so the model never answers without any grounding.
const TopK = 8

// Scorer ranks knowledge-base entries against a user question. The HTTP
// relay depends only on this interface, so the heuristic can be swapped
// without touching the relay.
type Scorer interface {
	Rank(message string, entries []Entry) []Entry
}

// keywordScorer is the tag-and-keyword-overlap heuristic.
//
// Weights per entry, cumulative across all three rules:
//   - +3 per tag appearing as a substring of the lowercased message
//   - +2 extra per tag (longer than 3 chars) matching a whole message token
//   - +0.3 per message word (4+ chars) found anywhere in the entry content
//
// Ties keep knowledge-base order (stable sort).
type keywordScorer struct{}

// NewKeywordScorer returns the default scoring strategy.
func NewKeywordScorer() Scorer {
	return keywordScorer{}
}

func (keywordScorer) Rank(message string, entries []Entry) []Entry {
	msg := strings.ToLower(message)
	tokens := tokenize(msg)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	scores := make([]float64, len(entries))
	for i, entry := range entries {
		score := 0.0
		for _, tag := range entry.Tags {
			tag = strings.ToLower(tag)
			if strings.Contains(msg, tag) {
				score += 3
			}
			if len(tag) > 3 && tokenSet[tag] {
				score += 2
			}
		}
		content := strings.ToLower(entry.Content)
		for _, tok := range tokens {
			if len(tok) >= 4 && strings.Contains(content, tok) {
				score += 0.3
			}
		}
		scores[i] = score
	}

	ranked := make([]int, len(entries))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	n := TopK
	if n > len(entries) {
		n = len(entries)
	}
	top := make([]Entry, 0, n)
	for _, idx := range ranked[:n] {
		top = append(top, entries[idx])
	}
	return top
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
