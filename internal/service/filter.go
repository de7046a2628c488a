package service

import (
	"strings"

	"docshelf/internal/category"
	"docshelf/internal/model"
)

// AllTags is the tag filter value that matches every document.
const AllTags = "all"

// Filter narrows the visible documents.
type Filter struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Tag      string `json:"tag"`
}

// DefaultFilter matches every document.
func DefaultFilter() Filter {
	return Filter{Category: category.All, Tag: AllTags}
}

// Match reports whether d passes the filter. The query is matched case-insensitively
// against the name, description and document number.
func (f Filter) Match(d model.Document) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.Description), q) &&
			!strings.Contains(strings.ToLower(d.DocumentNumber), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != category.All && string(d.Category) != f.Category {
		return false
	}
	if f.Tag != "" && f.Tag != AllTags && !d.HasTag(f.Tag) {
		return false
	}
	return true
}
