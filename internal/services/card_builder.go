package services

import (
	"github.com/codyseavey/mtga-ko/internal/metrics"
	"github.com/codyseavey/mtga-ko/internal/models"
)

// NoFlavorTextID is the placeholder flavor text id used by cards without one.
const NoFlavorTextID = 1

// CardRecordBuilder joins card metadata with composed ability text.
type CardRecordBuilder struct {
	localizer Localizer
	composer  *AbilityComposer
}

func NewCardRecordBuilder(localizer Localizer, composer *AbilityComposer) *CardRecordBuilder {
	return &CardRecordBuilder{localizer: localizer, composer: composer}
}

// Build converts rows into records in row order. When two rows share an
// English title only the first is kept.
func (b *CardRecordBuilder) Build(rows []models.CardRow) []models.CardRecord {
	records := make([]models.CardRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for i := range rows {
		record := b.BuildOne(&rows[i])
		if _, dup := seen[record.SearchValue]; dup {
			metrics.DuplicateCardsDropped.Inc()
			continue
		}
		seen[record.SearchValue] = struct{}{}
		records = append(records, record)
	}
	return records
}

// BuildOne converts a single row without deduplication.
func (b *CardRecordBuilder) BuildOne(row *models.CardRow) models.CardRecord {
	record := models.CardRecord{
		ArenaID:     row.GrpID,
		SearchValue: b.text(row.TitleID, models.LocaleEnglish),
		CardName:    b.text(row.TitleID, models.LocaleKorean),
		Rarity:      models.MapRarityOrder(row.RarityOrder),
		Color:       models.MapColors(row.Colors),
		ManaValue:   row.ManaValue,
		Type:        b.text(row.TypeTextID, models.LocaleKorean),
		SubType:     b.text(row.SubtypeTextID, models.LocaleKorean),
		Power:       deref(row.Power),
		Toughness:   deref(row.Toughness),
	}

	if row.FlavorTextID != NoFlavorTextID {
		record.FlavorText = b.text(row.FlavorTextID, models.LocaleKorean)
	}

	if abilityIDs := deref(row.AbilityIDs); abilityIDs != "" {
		record.Text, record.AnnotatedText = b.composer.Compose(abilityIDs, deref(row.Subtypes))
	}

	return record
}

func (b *CardRecordBuilder) text(locID int, locale models.Locale) string {
	text, _ := b.localizer.Localize(locID, locale)
	return text
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
