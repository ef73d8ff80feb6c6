package vanilla

import "strings"

func joinClasses(base, extra string) string {
	extra = sanitizeClassList(extra)
	if extra == "" {
		return base
	}
	return base + " " + extra
}

// sanitizeClassList drops empty tokens and any attempt to re-declare the
// reserved formview-* classes.
func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "formview-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
