package persistence

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE/ILIKE metacharacters so a search term matches
// only its literal occurrence. Postgres treats backslash as the default
// escape character for LIKE patterns.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// likeContains builds an ILIKE pattern matching the term as a literal substring
func likeContains(term string) string {
	return "%" + escapeLike(term) + "%"
}
