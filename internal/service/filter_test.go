package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docshelf/internal/category"
	"docshelf/internal/model"
)

func TestFilter_Match(t *testing.T) {
	doc := model.Document{
		Name:           "Quarterly Report.pdf",
		Description:    "Revenue breakdown",
		DocumentNumber: "REP-2024-003",
		Category:       category.Report,
		Tags:           []string{"finance", "q1"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "default matches", filter: DefaultFilter(), want: true},
		{name: "zero value matches", filter: Filter{}, want: true},
		{name: "name case-insensitive", filter: Filter{Query: "quarterly"}, want: true},
		{name: "description", filter: Filter{Query: "REVENUE"}, want: true},
		{name: "document number", filter: Filter{Query: "rep-2024"}, want: true},
		{name: "query miss", filter: Filter{Query: "minutes"}, want: false},
		{name: "category hit", filter: Filter{Category: "REPORT"}, want: true},
		{name: "category miss", filter: Filter{Category: "TECH"}, want: false},
		{name: "tag hit", filter: Filter{Tag: "q1"}, want: true},
		{name: "tag miss", filter: Filter{Tag: "legal"}, want: false},
		{name: "all conditions", filter: Filter{Query: "report", Category: "REPORT", Tag: "finance"}, want: true},
		{name: "one condition fails", filter: Filter{Query: "report", Category: "REPORT", Tag: "legal"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(doc))
		})
	}
}
