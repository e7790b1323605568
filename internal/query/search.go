package query

import (
	"regexp"
	"strings"

	"storefront/internal/model"
)

// Search terms are restricted to letters, digits, whitespace and hyphens so a
// term can never carry pattern metacharacters into the database.
var safeSearch = regexp.MustCompile(`^[\p{L}\p{N}\s-]+$`)

// Search validates a raw search parameter. An empty value means "no search";
// any character outside the permitted class is rejected.
func Search(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if !safeSearch.MatchString(raw) {
		return "", model.ErrInvalidSearch
	}
	return raw, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern builds a case-insensitive substring pattern for ILIKE from an
// already validated term. The term is escaped, never interpolated into a
// pattern engine.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
