package utils

import "sort"

// UniqueSorted returns a sorted copy of ids with duplicates removed.
func UniqueSorted(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	cp := make([]string, len(ids))
	copy(cp, ids)
	sort.Strings(cp)

	out := make([]string, 0, len(cp))
	for i := range cp {
		if i == 0 || cp[i] != cp[i-1] {
			out = append(out, cp[i])
		}
	}
	return out
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
