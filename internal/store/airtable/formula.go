package airtable

import (
	"fmt"
	"program-portal-go/internal/store"
	"strings"
)

const listSeparator = ","

var (
	literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`)
	fieldEscaper   = strings.NewReplacer("{", "", "}", "")
)

// Formula renders a predicate as an Airtable filterByFormula expression.
// A nil predicate renders as "" which means no filter.
func Formula(p store.Predicate) (string, error) {
	switch p := p.(type) {
	case nil:
		return "", nil
	case store.Equals:
		return fmt.Sprintf("%s = %s", fieldRef(p.Field), quote(p.Value)), nil
	case store.Contains:
		// Exact membership: wrap both the joined list and the needle in
		// separators so "cpr" does not match "cpr-advanced". A needle holding
		// the separator could straddle two elements, so it matches nothing.
		if strings.Contains(p.Value, listSeparator) {
			return "FALSE()", nil
		}
		return fmt.Sprintf("FIND(%s, ',' & ARRAYJOIN(%s, ',') & ',') > 0",
			quote(","+p.Value+","), fieldRef(p.Field)), nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

// quote returns s as a single-quoted formula string literal.
func quote(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

func fieldRef(name string) string {
	return "{" + fieldEscaper.Replace(name) + "}"
}
