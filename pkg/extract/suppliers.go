package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var orderTokenRe = regexp.MustCompile(`\d+`)

// OrderSelections extracts supplier order-ID selections from chat input.
// Order IDs are the 1-based display indexes of a previous supplier search.
// JSON arrays are honored first (integers, numeric strings, or objects
// carrying an order-id key); otherwise every integer token in the text
// counts. Results keep input order, drop non-positive values, and are
// deduplicated.
func OrderSelections(input string) []int {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if ids, ok := selectionsFromJSON(trimmed); ok {
			return ids
		}
	}

	ids := make([]int, 0)
	for _, token := range orderTokenRe.FindAllString(input, -1) {
		if id, err := strconv.Atoi(token); err == nil {
			ids = append(ids, id)
		}
	}

	return dedupeOrderIDs(ids)
}

func selectionsFromJSON(input string) ([]int, bool) {
	var items []any

	if err := json.Unmarshal([]byte(input), &items); err != nil {
		return nil, false
	}

	ids := make([]int, 0, len(items))

	for _, item := range items {
		switch value := item.(type) {
		case float64:
			ids = append(ids, int(value))
		case string:
			if id, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				ids = append(ids, id)
			}
		case map[string]any:
			for _, key := range []string{"orderId", "order_id", "orderID"} {
				if id := int(jsonNumber(value, key)); id != 0 {
					ids = append(ids, id)

					break
				}
			}
		}
	}

	return dedupeOrderIDs(ids), true
}

func dedupeOrderIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))

	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}

		seen[id] = true

		out = append(out, id)
	}

	return out
}
