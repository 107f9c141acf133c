package store

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestQueryValidate(t *testing.T) {
	valid := Query{Table: "Programs", Fields: []string{"Slug"}, Limit: 1}
	assert.NoError(t, valid.Validate())

	noFields := valid
	noFields.Fields = nil
	assert.Error(t, noFields.Validate())

	noLimit := valid
	noLimit.Limit = 0
	assert.Error(t, noLimit.Validate())

	noTable := valid
	noTable.Table = ""
	assert.Error(t, noTable.Validate())
}

func TestRecordNumber(t *testing.T) {
	r := Record{Fields: map[string]any{"a": 2.5, "b": 3, "c": int64(4), "d": "5"}}

	v, ok := r.Number("a")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	v, ok = r.Number("b")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = r.Number("c")
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	_, ok = r.Number("d")
	assert.False(t, ok)

	_, ok = r.Number("missing")
	assert.False(t, ok)
}

func TestRecordString(t *testing.T) {
	r := Record{Fields: map[string]any{"Name": "CPR", "Count": 3}}
	assert.Equal(t, "CPR", r.String("Name"))
	assert.Equal(t, "", r.String("Count"))
	assert.Equal(t, "", r.String("missing"))
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	cause := errors.New("rate limited")
	err := error(&UpstreamError{Op: "select", Table: "Programs", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `record store select "Programs": rate limited`, err.Error())

	var upstream *UpstreamError
	assert.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Programs", upstream.Table)
}
