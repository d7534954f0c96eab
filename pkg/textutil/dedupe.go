package textutil

import "strings"

// DedupCaseInsensitive removes duplicates from items, comparing keys after
// lower-casing. Order is stable: the first occurrence wins.
func DedupCaseInsensitive[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		k := strings.ToLower(strings.TrimSpace(key(item)))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, item)
	}
	return result
}

// DedupStrings is DedupCaseInsensitive over the strings themselves, with
// each kept entry trimmed.
func DedupStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		k := strings.ToLower(trimmed)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, trimmed)
	}
	return result
}

// Truncate caps items at max, preserving order. A max below zero means no cap.
func Truncate[T any](items []T, max int) []T {
	if max < 0 || len(items) <= max {
		return items
	}
	return items[:max]
}
