package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redstring/internal/sqlinline"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Smith, Jane":      "SMITH, JANE",
		"  smith,jane  ":   "SMITH, JANE",
		"Núñez,  José":     "NUNEZ, JOSE",
		"O'Brien, Patrick": "O'BRIEN, PATRICK",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestNameIndexMatch(t *testing.T) {
	idx := NewNameIndex()
	idx.Add("Smith, Jane", "1")
	idx.Add("Núñez, José", "2")

	id, ok := idx.Match("SMITH, JANE")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	id, ok = idx.Match("Smith, Jane M")
	assert.True(t, ok, "trailing initial is retried without it")
	assert.Equal(t, "1", id)

	id, ok = idx.Match("Nunez, Jose")
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	_, ok = idx.Match("Doe, John")
	assert.False(t, ok)
	_, ok = idx.Match("Smith")
	assert.False(t, ok)
}

func TestLoadNameIndex(t *testing.T) {
	sql := &scriptedSQL{rows: map[string][][]any{
		sqlinline.QListCFBNames: {{"1", "Smith, Jane"}, {"2", "Doe, John"}},
	}}

	idx, err := LoadNameIndex(context.Background(), sql)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	id, ok := idx.Match("Doe, John")
	assert.True(t, ok)
	assert.Equal(t, "2", id)
}

func TestCFBName(t *testing.T) {
	assert.Equal(t, "Smith, Jane", CFBName("Jane", "Smith"))
}
