package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"github.com/lib/pq"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
	"program-portal-go/internal/store"
	"regexp"
	"strings"
)

// Client is a store.Gateway over a PostgreSQL mirror of the record store.
// Table and field names map to snake_case identifiers, so "Training Modules"
// is read from training_modules and "Sort Order" from sort_order. List fields
// are text[] and attachment fields are jsonb.
type Client interface {
	store.Gateway
	Close()
}

type client struct {
	db *sql.DB
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func NewClient(connStr string) (Client, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &client{db: db}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

func (c *client) Select(ctx context.Context, q store.Query) ([]store.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query, args, err := buildSelect(q)
	if err != nil {
		return nil, err
	}

	segment := newrelic.DatastoreSegment{
		StartTime:          newrelic.FromContext(ctx).NewGoroutine().StartSegmentNow(),
		Product:            newrelic.DatastorePostgres,
		Collection:         q.Table,
		Operation:          "SELECT",
		ParameterizedQuery: query,
	}
	defer segment.End()

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &store.UpstreamError{Op: "select", Table: q.Table, Err: err}
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, &store.UpstreamError{Op: "scan", Table: q.Table, Err: err}
		}

		fields := map[string]any{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, &store.UpstreamError{Op: "decode", Table: q.Table, Err: err}
		}
		for k, v := range fields {
			if v == nil {
				delete(fields, k)
			}
		}

		records = append(records, store.Record{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, &store.UpstreamError{Op: "select", Table: q.Table, Err: err}
	}

	return records, nil
}

// buildSelect renders a query as SQL. Values are always bound parameters.
// Each row comes back as its id plus a jsonb object keyed by field name.
func buildSelect(q store.Query) (string, []any, error) {
	table, err := ident(q.Table)
	if err != nil {
		return "", nil, err
	}

	pairs := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		col, err := ident(f)
		if err != nil {
			return "", nil, err
		}
		pairs = append(pairs, pq.QuoteLiteral(f)+", "+col)
	}

	var (
		b    strings.Builder
		args []any
	)
	fmt.Fprintf(&b, "SELECT id, jsonb_build_object(%s) FROM %s", strings.Join(pairs, ", "), table)

	switch p := q.Where.(type) {
	case nil:
	case store.Equals:
		col, err := ident(p.Field)
		if err != nil {
			return "", nil, err
		}
		args = append(args, p.Value)
		fmt.Fprintf(&b, " WHERE %s = $%d", col, len(args))
	case store.Contains:
		col, err := ident(p.Field)
		if err != nil {
			return "", nil, err
		}
		args = append(args, p.Value)
		fmt.Fprintf(&b, " WHERE $%d = ANY(%s)", len(args), col)
	default:
		return "", nil, fmt.Errorf("unsupported predicate %T", p)
	}

	if len(q.Sort) > 0 {
		orders := make([]string, 0, len(q.Sort))
		for _, s := range q.Sort {
			col, err := ident(s.Field)
			if err != nil {
				return "", nil, err
			}
			dir := "ASC"
			if s.Direction == store.Desc {
				dir = "DESC"
			}
			orders = append(orders, col+" "+dir+" NULLS LAST")
		}
		b.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}

	args = append(args, q.Limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	return b.String(), args, nil
}

// ident maps a store name to a quoted SQL identifier.
func ident(name string) (string, error) {
	id := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if !identPattern.MatchString(id) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return pq.QuoteIdentifier(id), nil
}
