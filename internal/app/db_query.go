package app

import (
	"strings"
	"unicode/utf8"
)

const maxSpanQueryBytes = 512

// formatQueryForSpan folds a SQL statement onto one line for the db.statement
// span attribute. Long statements are cut on a rune boundary.
func formatQueryForSpan(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxSpanQueryBytes {
		return query
	}

	cut := maxSpanQueryBytes
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
