package fixture

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"program-portal-go/internal/store"
	"testing"
)

func loadStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load("../../../testdata/programs.yaml")
	require.NoError(t, err)
	return s
}

func ids(records []store.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestSelectEquals(t *testing.T) {
	s := loadStore(t)

	recs, err := s.Select(context.Background(), store.Query{
		Table:  "Programs",
		Where:  store.Equals{Field: "Slug", Value: "o'brien-method"},
		Fields: []string{"Slug", "Name"},
		Limit:  1,
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "recProgQuote", recs[0].ID)
	assert.NotContains(t, recs[0].Fields, "Description", "unprojected fields must not be returned")
}

func TestSelectContainsIsExactMembership(t *testing.T) {
	s := loadStore(t)

	recs, err := s.Select(context.Background(), store.Query{
		Table:  "Training Modules",
		Where:  store.Contains{Field: "Programs", Value: "cpr-basics"},
		Fields: []string{"Name", "Sort Order"},
		Limit:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"recModAirway", "recModIntro", "recModAED"}, ids(recs))
}

func TestSelectSortAndLimit(t *testing.T) {
	s := loadStore(t)

	recs, err := s.Select(context.Background(), store.Query{
		Table:  "Training Modules",
		Where:  store.Contains{Field: "Programs", Value: "cpr-basics"},
		Fields: []string{"Name", "Sort Order"},
		Sort:   []store.Sort{{Field: "Sort Order", Direction: store.Asc}},
		Limit:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"recModIntro", "recModAirway", "recModAED"}, ids(recs))

	recs, err = s.Select(context.Background(), store.Query{
		Table:  "Programs",
		Fields: []string{"Name"},
		Sort:   []store.Sort{{Field: "Name", Direction: store.Desc}},
		Limit:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"recProgWound", "recProgQuote"}, ids(recs))
}

func TestSelectUnknownTable(t *testing.T) {
	s := New(nil)

	_, err := s.Select(context.Background(), store.Query{Table: "Nope", Fields: []string{"Name"}, Limit: 1})

	var upstream *store.UpstreamError
	assert.True(t, errors.As(err, &upstream))
}

func TestParseRejectsRowsWithoutID(t *testing.T) {
	_, err := Parse([]byte("tables:\n  Programs:\n    - fields:\n        Slug: x\n"))
	assert.Error(t, err)
}
