package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docshelf/internal/category"
	"docshelf/internal/model"
)

func TestDocumentNumber(t *testing.T) {
	reg := category.Default()
	at := func(y int) time.Time { return time.Date(y, 6, 1, 0, 0, 0, 0, time.UTC) }
	docs := []model.Document{
		{Category: category.Report, UploadDate: at(2024)},
		{Category: category.Report, UploadDate: at(2024)},
		{Category: category.Report, UploadDate: at(2023)},
		{Category: category.Tech, UploadDate: at(2024)},
	}

	tests := []struct {
		name string
		docs []model.Document
		cat  category.Key
		date time.Time
		want string
	}{
		{name: "empty collection", cat: category.Report, date: at(2024), want: "REP-2024-001"},
		{name: "counts same category and year", docs: docs, cat: category.Report, date: at(2024), want: "REP-2024-003"},
		{name: "other year", docs: docs, cat: category.Report, date: at(2023), want: "REP-2023-002"},
		{name: "new year starts over", docs: docs, cat: category.Report, date: at(2025), want: "REP-2025-001"},
		{name: "other category", docs: docs, cat: category.Tech, date: at(2024), want: "TECH-2024-002"},
		{name: "other prefix", docs: docs, cat: category.Other, date: at(2024), want: "DOC-2024-001"},
		{name: "meeting prefix", cat: category.Meeting, date: at(2024), want: "MTG-2024-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documentNumber(reg, tt.docs, tt.cat, tt.date))
		})
	}
}

func TestDocumentNumber_PadsBeyondThreeDigits(t *testing.T) {
	docs := make([]model.Document, 1000)
	for i := range docs {
		docs[i] = model.Document{Category: category.Spec, UploadDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	}
	assert.Equal(t, "SPEC-2024-1001", documentNumber(category.Default(), docs, category.Spec, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}
