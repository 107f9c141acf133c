// Package fixture serves records from memory. Records are usually loaded from
// a YAML file shaped like:
//
//	tables:
//	  Programs:
//	    - id: recP1
//	      fields:
//	        Slug: cpr-basics
//	        Name: CPR Basics
package fixture

import (
	"context"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"program-portal-go/internal/store"
	"sort"
)

type file struct {
	Tables map[string][]struct {
		ID     string         `yaml:"id"`
		Fields map[string]any `yaml:"fields"`
	} `yaml:"tables"`
}

type Store struct {
	tables map[string][]store.Record
}

func New(tables map[string][]store.Record) *Store {
	return &Store{tables: tables}
}

func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Store, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture yaml: %w", err)
	}

	tables := make(map[string][]store.Record, len(f.Tables))
	for name, rows := range f.Tables {
		records := make([]store.Record, 0, len(rows))
		for i, row := range rows {
			if row.ID == "" {
				return nil, fmt.Errorf("table %q row %d has no id", name, i)
			}
			records = append(records, store.Record{ID: row.ID, Fields: row.Fields})
		}
		tables[name] = records
	}

	return New(tables), nil
}

func (s *Store) Select(ctx context.Context, q store.Query) ([]store.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rows, ok := s.tables[q.Table]
	if !ok {
		return nil, &store.UpstreamError{Op: "select", Table: q.Table, Err: fmt.Errorf("table not found")}
	}

	var matched []store.Record
	for _, r := range rows {
		if match(q.Where, r) {
			matched = append(matched, project(r, q.Fields))
		}
	}

	for i := len(q.Sort) - 1; i >= 0; i-- {
		sortBy(matched, q.Sort[i])
	}

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return matched, nil
}

func match(p store.Predicate, r store.Record) bool {
	switch p := p.(type) {
	case nil:
		return true
	case store.Equals:
		v, _ := r.Fields[p.Field].(string)
		return v == p.Value
	case store.Contains:
		switch list := r.Fields[p.Field].(type) {
		case string:
			return list == p.Value
		case []string:
			for _, v := range list {
				if v == p.Value {
					return true
				}
			}
		case []any:
			for _, v := range list {
				if s, ok := v.(string); ok && s == p.Value {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

func project(r store.Record, fields []string) store.Record {
	out := store.Record{ID: r.ID, Fields: make(map[string]any, len(fields))}
	for _, f := range fields {
		if v, ok := r.Fields[f]; ok {
			out.Fields[f] = v
		}
	}
	return out
}

// sortBy is stable so repeated calls from the last key to the first give a
// multi-key sort. Records missing the field go last in either direction.
func sortBy(records []store.Record, s store.Sort) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i].Fields[s.Field]
		b, bok := records[j].Fields[s.Field]
		switch {
		case !aok:
			return false
		case !bok:
			return true
		}
		if s.Direction == store.Desc {
			return less(b, a)
		}
		return less(a, b)
	})
}

func less(a, b any) bool {
	an, aNum := store.Number(a)
	bn, bNum := store.Number(b)
	if aNum && bNum {
		return an < bn
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
