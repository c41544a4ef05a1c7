package tokens

import "sort"

// DefaultKeywordCount is the number of keywords extracted when the caller
// does not ask for a specific amount.
const DefaultKeywordCount = 5

// ExtractKeywords returns up to maxCount distinct tokens of text ordered by
// descending frequency. Tokens with equal frequency keep the order of their
// first occurrence.
func ExtractKeywords(text string, maxCount int) []string {
	if maxCount <= 0 {
		return []string{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, token := range Normalize(text) {
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxCount {
		order = order[:maxCount]
	}

	return order
}
