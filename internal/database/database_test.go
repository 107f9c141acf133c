package database

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"program-portal-go/internal/store"
	"testing"
)

func TestBuildSelectEquals(t *testing.T) {
	query, args, err := buildSelect(store.Query{
		Table:  "Programs",
		Where:  store.Equals{Field: "Slug", Value: "o'brien"},
		Fields: []string{"Slug", "Name"},
		Limit:  1,
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT id, jsonb_build_object('Slug', "slug", 'Name', "name") FROM "programs" WHERE "slug" = $1 LIMIT $2`,
		query)
	assert.Equal(t, []any{"o'brien", 1}, args)
}

func TestBuildSelectContainsAndSort(t *testing.T) {
	query, args, err := buildSelect(store.Query{
		Table:  "Training Modules",
		Where:  store.Contains{Field: "Programs", Value: "cpr-basics"},
		Fields: []string{"Name", "Sort Order", "File URL"},
		Sort:   []store.Sort{{Field: "Sort Order", Direction: store.Asc}},
		Limit:  100,
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT id, jsonb_build_object('Name', "name", 'Sort Order', "sort_order", 'File URL', "file_url") `+
			`FROM "training_modules" WHERE $1 = ANY("programs") ORDER BY "sort_order" ASC NULLS LAST LIMIT $2`,
		query)
	assert.Equal(t, []any{"cpr-basics", 100}, args)
}

func TestBuildSelectNoFilter(t *testing.T) {
	query, args, err := buildSelect(store.Query{
		Table:  "Programs",
		Fields: []string{"Name"},
		Sort:   []store.Sort{{Field: "Name", Direction: store.Desc}},
		Limit:  50,
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT id, jsonb_build_object('Name', "name") FROM "programs" ORDER BY "name" DESC NULLS LAST LIMIT $1`,
		query)
	assert.Equal(t, []any{50}, args)
}

func TestBuildSelectRejectsBadIdentifiers(t *testing.T) {
	bad := []store.Query{
		{Table: `programs"; DROP TABLE programs; --`, Fields: []string{"Name"}, Limit: 1},
		{Table: "Programs", Fields: []string{"Name', (SELECT 1), 'x"}, Limit: 1},
		{Table: "Programs", Fields: []string{"Name"}, Where: store.Equals{Field: "1=1 OR slug", Value: "x"}, Limit: 1},
	}

	for _, q := range bad {
		_, _, err := buildSelect(q)
		assert.Error(t, err)
	}
}
