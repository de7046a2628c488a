package service

import (
	"fmt"
	"time"

	"docshelf/internal/category"
	"docshelf/internal/model"
)

// documentNumber returns "{prefix}-{year}-{NNN}" where NNN is one more than the number of
// documents in docs with the same category uploaded in the same calendar year as date.
// Ordinals are derived from the live collection, so a number can repeat after a deletion.
func documentNumber(reg *category.Registry, docs []model.Document, cat category.Key, date time.Time) string {
	year := date.Year()
	count := 0
	for _, d := range docs {
		if d.Category == cat && d.UploadDate.In(date.Location()).Year() == year {
			count++
		}
	}
	return fmt.Sprintf("%s-%d-%03d", reg.Prefix(cat), year, count+1)
}
