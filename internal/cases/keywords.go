package cases

import "strings"

// JoinKeywords serializes a keyword list into the comma-joined form the
// storage layer keeps (one spreadsheet cell originally). Order and
// duplicates are preserved.
func JoinKeywords(keywords []string) string {
	trimmed := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		trimmed = append(trimmed, k)
	}
	return strings.Join(trimmed, ",")
}

// SplitKeywords parses the stored comma-joined form back into a list of
// trimmed keywords. An empty cell decodes to an empty list, not [""].
func SplitKeywords(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keywords = append(keywords, p)
	}
	return keywords
}
