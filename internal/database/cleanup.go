package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/codyseavey/mtga-ko/internal/models"
)

// DeleteUnreviewedLocalizations removes Korean rows the client ships as
// unreviewed: Formatted = 2, or text starting with the '#' marker.
// Runs before any lookup so those rows can never be selected.
func DeleteUnreviewedLocalizations(db *gorm.DB) (int64, error) {
	table := models.LocalizationTable(models.LocaleKorean)
	result := db.Exec(
		"DELETE FROM "+table+" WHERE Formatted = ? OR Loc LIKE ?",
		models.FormattedUnreviewed, models.UnreviewedTextMarker+"%",
	)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d unreviewed %s rows", result.RowsAffected, table)
	}
	return result.RowsAffected, nil
}

// NormalizeLocalizations rewrites every Korean row through clean, in place.
// Only rows whose text changes are updated. This is safe to run multiple
// times as long as clean is idempotent.
func NormalizeLocalizations(db *gorm.DB, clean func(string) string) (int64, error) {
	table := models.LocalizationTable(models.LocaleKorean)

	var entries []models.LocalizationEntry
	if err := db.Table(table).Find(&entries).Error; err != nil {
		return 0, err
	}

	var updated int64
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			cleaned := clean(e.Text)
			if cleaned == e.Text {
				continue
			}
			// Rows sharing a LocId differ by Formatted, so both are part of the key.
			result := tx.Table(table).
				Where("LocId = ? AND Formatted = ? AND Loc = ?", e.LocID, e.Formatted, e.Text).
				Update("Loc", cleaned)
			if result.Error != nil {
				return result.Error
			}
			updated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Normalized %d of %d %s rows", updated, len(entries), table)
	return updated, nil
}
