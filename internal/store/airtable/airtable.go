package airtable

import (
	"context"
	"fmt"
	"github.com/mehanizm/airtable"
	"github.com/newrelic/go-agent/v3/newrelic"
	"program-portal-go/internal/store"
)

// maxPageSize is the largest page the Airtable REST API returns.
const maxPageSize = 100

// Store is a store.Gateway backed by one Airtable base.
type Store struct {
	client *airtable.Client
	baseID string
}

type Option func(*airtable.Client) error

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *airtable.Client) error {
		return c.SetBaseURL(baseURL)
	}
}

func NewStore(apiKey, baseID string, opts ...Option) (*Store, error) {
	if apiKey == "" || baseID == "" {
		return nil, fmt.Errorf("airtable api key and base id are required")
	}

	client := airtable.NewClient(apiKey)
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, fmt.Errorf("configuring airtable client: %w", err)
		}
	}

	return &Store{client: client, baseID: baseID}, nil
}

func (s *Store) Select(ctx context.Context, q store.Query) ([]store.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	formula, err := Formula(q.Where)
	if err != nil {
		return nil, err
	}

	// Select runs concurrently under one request, so each call takes its own
	// goroutine reference to the transaction.
	defer newrelic.FromContext(ctx).NewGoroutine().StartSegment("store/" + q.Table).End()

	table := s.client.GetTable(s.baseID, q.Table)

	records := make([]store.Record, 0, q.Limit)
	offset := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, &store.UpstreamError{Op: "select", Table: q.Table, Err: err}
		}

		req := table.GetRecords().
			ReturnFields(q.Fields...).
			MaxRecords(q.Limit).
			PageSize(min(q.Limit, maxPageSize))
		if formula != "" {
			req = req.WithFilterFormula(formula)
		}
		if len(q.Sort) > 0 {
			req = req.WithSort(sortQueries(q.Sort)...)
		}
		if offset != "" {
			req = req.WithOffset(offset)
		}

		page, err := req.DoContext(ctx)
		if err != nil {
			return nil, &store.UpstreamError{Op: "select", Table: q.Table, Err: err}
		}

		for _, r := range page.Records {
			if len(records) == q.Limit {
				break
			}
			records = append(records, store.Record{ID: r.ID, Fields: r.Fields})
		}

		if page.Offset == "" || len(records) >= q.Limit {
			return records, nil
		}
		offset = page.Offset
	}
}

func sortQueries(sorts []store.Sort) []struct {
	FieldName string
	Direction string
} {
	out := make([]struct {
		FieldName string
		Direction string
	}, 0, len(sorts))
	for _, s := range sorts {
		dir := s.Direction
		if dir == "" {
			dir = store.Asc
		}
		out = append(out, struct {
			FieldName string
			Direction string
		}{FieldName: s.Field, Direction: string(dir)})
	}
	return out
}
