package utils

import (
	"fmt"
	"strings"
)

// propertyTypeAliases maps lower-case labels and common aliases to canonical property types
var propertyTypeAliases = map[string]string{
	"house":       "House",
	"detached":    "House",
	"bungalow":    "House",
	"apartment":   "Apartment",
	"apt":         "Apartment",
	"flat":        "Apartment",
	"condo":       "Condo",
	"condominium": "Condo",
	"townhouse":   "Townhouse",
	"town house":  "Townhouse",
	"terrace":     "Townhouse",
	"villa":       "Villa",
	"land":        "Land",
	"lot":         "Land",
	"plot":        "Land",
	"commercial":  "Commercial",
	"office":      "Commercial",
	"retail":      "Commercial",
	"shophouse":   "Commercial",
}

// NormalizePropertyType maps a property type label or alias to its canonical form.
// Unknown labels are returned trimmed but otherwise unchanged.
func NormalizePropertyType(label string) string {
	trimmed := strings.TrimSpace(label)
	if normalized, ok := propertyTypeAliases[strings.ToLower(trimmed)]; ok {
		return normalized
	}
	return trimmed
}

// ContainsFold reports whether text contains term, ignoring case and surrounding space
func ContainsFold(text, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), term)
}

// MatchesAny reports whether any of the fields contains term
func MatchesAny(term string, fields ...string) bool {
	for _, field := range fields {
		if ContainsFold(field, term) {
			return true
		}
	}
	return false
}

// EscapeLike escapes LIKE wildcards so user text matches literally
func EscapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// BuildContainsCondition builds an ILIKE condition for one column.
// Returns the SQL fragment, its parameter and the next parameter index.
func BuildContainsCondition(column, term string, paramIndex int) (string, interface{}, int) {
	condition := fmt.Sprintf("%s ILIKE $%d", column, paramIndex)
	return condition, "%" + EscapeLike(strings.TrimSpace(term)) + "%", paramIndex + 1
}
