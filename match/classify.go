package match

import "strings"

// categoryTerms maps each recognized term to its canonical category. Most
// terms name their own category; synonyms fold into one (a backpack is a
// bag). Order matters: it breaks ties when two terms start at the same
// position in the text.
var categoryTerms = []struct {
	term     string
	category string
}{
	{"ring", "ring"},
	{"phone", "phone"},
	{"wallet", "wallet"},
	{"keys", "keys"},
	{"backpack", "bag"},
	{"rucksack", "bag"},
	{"knapsack", "bag"},
	{"bag", "bag"},
	{"laptop", "laptop"},
	{"bottle", "bottle"},
	{"watch", "watch"},
	{"umbrella", "umbrella"},
	{"glasses", "glasses"},
	{"card", "card"},
	{"headphones", "headphones"},
}

// Classify finds the item category mentioned in text.
// The match is a case-insensitive substring check against a fixed
// vocabulary; the term occurring earliest in the text wins. Returns
// ok=false when no vocabulary term appears.
func Classify(text string) (string, bool) {
	lowered := strings.ToLower(text)

	best := ""
	bestPos := -1
	for _, entry := range categoryTerms {
		pos := strings.Index(lowered, entry.term)
		if pos < 0 {
			continue
		}
		if bestPos == -1 || pos < bestPos {
			best = entry.category
			bestPos = pos
		}
	}

	return best, bestPos >= 0
}
