package match

import "strings"

// tokenize splits text into words, lowercases, and trims punctuation.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}

	return tokens
}

// lexicalScore computes the token-overlap ratio between a query and a
// candidate text, scaled to [0, 100]. The ratio is normalized by the query's
// token count, not the union, so a verbose candidate that contains every
// query term still scores 100. An empty query scores 0.
func lexicalScore(query, candidate string) float64 {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return 0
	}

	candidateSet := make(map[string]bool)
	for _, token := range tokenize(candidate) {
		candidateSet[token] = true
	}

	seen := make(map[string]bool, len(queryTokens))
	hits := 0
	total := 0
	for _, token := range queryTokens {
		if seen[token] {
			continue
		}
		seen[token] = true
		total++
		if candidateSet[token] {
			hits++
		}
	}

	return 100 * float64(hits) / float64(total)
}
