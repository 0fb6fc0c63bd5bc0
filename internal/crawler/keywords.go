package crawler

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxKeywords = 10

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {}, "from": {},
	"will": {}, "have": {}, "also": {}, "when": {}, "which": {}, "your": {},
	"more": {}, "make": {}, "them": {}, "their": {}, "just": {}, "than": {},
}

// ExtractKeywords returns up to ten of the most frequent words in text.
// Words are lowercased, stop words and words shorter than four runes are
// dropped, and ties keep the order of first occurrence.
func ExtractKeywords(text string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
