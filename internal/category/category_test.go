package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()

	list := r.List()
	require.Len(t, list, 7)
	assert.Equal(t, Report, list[0].Key)
	assert.Equal(t, Other, list[6].Key)

	tests := []struct {
		key    Key
		prefix string
		color  string
	}{
		{Report, "REP", "blue"},
		{Tech, "TECH", "green"},
		{Spec, "SPEC", "purple"},
		{Manual, "MAN", "orange"},
		{Proposal, "PROP", "pink"},
		{Meeting, "MTG", "indigo"},
		{Other, "DOC", "gray"},
	}
	for _, tt := range tests {
		c, ok := r.Get(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.prefix, c.Prefix)
		assert.Equal(t, tt.color, c.Color)
		assert.NotEmpty(t, c.Name)
	}
}

func TestRegistry_Prefix(t *testing.T) {
	r := Default()
	assert.Equal(t, "MTG", r.Prefix(Meeting))
	assert.Equal(t, "DOC", r.Prefix(Key("UNKNOWN")))
	assert.True(t, r.Valid(Spec))
	assert.False(t, r.Valid(Key("spec")))
}

func TestRegistry_ListIsACopy(t *testing.T) {
	r := Default()
	list := r.List()
	list[0].Prefix = "XXX"
	assert.Equal(t, "REP", r.Prefix(Report))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "categories: ["},
		{"unknown key", "categories:\n  - key: INVOICE\n    prefix: INV\n"},
		{"missing prefix", "categories:\n  - key: REPORT\n"},
		{"missing categories", "categories:\n  - key: REPORT\n    prefix: REP\n"},
		{"duplicate", "categories:\n  - key: REPORT\n    prefix: REP\n  - key: REPORT\n    prefix: REP\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
