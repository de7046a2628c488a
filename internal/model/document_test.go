package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Path(t *testing.T) {
	assert.Equal(t, "key", Document{StoragePath: "key", LocalPath: "/old"}.Path())
	assert.Equal(t, "/old", Document{LocalPath: "/old"}.Path())
	assert.Empty(t, Document{}.Path())
}

func TestDocument_Clone(t *testing.T) {
	opened := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := Document{
		ID:         "a",
		Tags:       []string{"x"},
		Links:      []DocumentLink{{ID: "l1", URL: "https://example.com"}},
		LastOpened: &opened,
	}

	c := d.Clone()
	c.Tags[0] = "y"
	c.Links[0].URL = "https://other.example.com"
	*c.LastOpened = opened.Add(time.Hour)

	assert.Equal(t, "x", d.Tags[0])
	assert.Equal(t, "https://example.com", d.Links[0].URL)
	assert.Equal(t, opened, *d.LastOpened)
}

func TestDocumentPatch_Apply(t *testing.T) {
	d := Document{ID: "a", Description: "old", Tags: []string{"x"}}

	desc := "new"
	out := DocumentPatch{Description: &desc}.Apply(d)
	assert.Equal(t, "new", out.Description)
	assert.Equal(t, []string{"x"}, out.Tags)

	out = DocumentPatch{Tags: []string{}}.Apply(d)
	assert.Empty(t, out.Tags)
	assert.Equal(t, "old", out.Description)
	assert.Equal(t, []string{"x"}, d.Tags)
}

func TestDocument_HasTag(t *testing.T) {
	d := Document{Tags: []string{"draft", "q1"}}
	assert.True(t, d.HasTag("q1"))
	assert.False(t, d.HasTag("Q1"))
}
