package store

import (
	"context"
	"fmt"
)

// Gateway selects records from a table-based record store.
type Gateway interface {
	Select(ctx context.Context, q Query) ([]Record, error)
}

// Record is a single row as returned by the store. Fields only holds the
// projected fields that had a value.
type Record struct {
	ID     string
	Fields map[string]any
}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(field string) string {
	s, _ := r.Fields[field].(string)
	return s
}

// Number returns the field as a float64. ok is false when the field is absent
// or not numeric.
func (r Record) Number(field string) (float64, bool) {
	return Number(r.Fields[field])
}

// Number converts the numeric types produced by store decoders to float64.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field     string
	Direction Direction
}

// Query describes a single select against one table.
type Query struct {
	Table  string
	Where  Predicate
	Fields []string
	Sort   []Sort
	Limit  int
}

// Validate rejects queries that would fetch every field or every row.
func (q Query) Validate() error {
	if q.Table == "" {
		return fmt.Errorf("query without table")
	}
	if len(q.Fields) == 0 {
		return fmt.Errorf("query on %q without field projection", q.Table)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("query on %q without limit", q.Table)
	}
	return nil
}

// Predicate is a filter understood by every backend. Backends translate it
// into their own query syntax.
type Predicate interface {
	predicate()
}

// Equals matches records whose scalar field equals Value.
type Equals struct {
	Field string
	Value string
}

// Contains matches records whose list-valued field has Value as one of its
// elements.
type Contains struct {
	Field string
	Value string
}

func (Equals) predicate()   {}
func (Contains) predicate() {}

// UpstreamError wraps any failure reported by the store or the transport to it.
type UpstreamError struct {
	Op    string
	Table string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("record store %s %q: %v", e.Op, e.Table, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
