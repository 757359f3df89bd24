package models

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Slugify lowercases the name and collapses every run of characters outside
// [а-яёa-z0-9] into a single dash. Cyrillic is kept as-is so that
// "Диван Премиум" becomes "диван-премиум".
func Slugify(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	dash := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			unicode.Is(unicode.Cyrillic, r), r == 'ё':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteRune('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// UniqueSlug derives a slug for name that is unique within table, skipping the
// row with the given id (so updates keep their own slug). Collisions get a
// numeric suffix: "стол", "стол-2", "стол-3", ...
func UniqueSlug(db *gorm.DB, table, name string, excludeID uint) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "item"
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		q := db.Table(table).Where("slug = ?", slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
