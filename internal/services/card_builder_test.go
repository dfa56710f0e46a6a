package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/codyseavey/mtga-ko/internal/models"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func testBuilder() *CardRecordBuilder {
	loc := fakeLocalizer{
		models.LocaleEnglish: {
			1000: "Lightning Bolt",
			1001: "Dark Ritual",
			3000: "Lightning Bolt deals 3 damage to any target.",
		},
		models.LocaleKorean: {
			1:    "자리표시자",
			1000: "번개 화살",
			1001: "어둠의 의식",
			2000: "순간마법",
			3000: "번개 화살은 아무 목표에게 피해 3점을 입힌다.",
			4000: "그 불꽃은 빨랐다.",
		},
	}
	composer := NewAbilityComposer(loc, fakeAbilities{}, NewAnnotationResolver(BuildAnnotationDictionary(nil), ResolverOptions{}))
	return NewCardRecordBuilder(loc, composer)
}

func TestCardRecordBuilder_BuildOne(t *testing.T) {
	builder := testBuilder()

	record := builder.BuildOne(&models.CardRow{
		GrpID:        68662,
		TitleID:      1000,
		TypeTextID:   2000,
		ManaValue:    intPtr(1),
		FlavorTextID: 4000,
		AbilityIDs:   strPtr("99:3000"),
		RarityOrder:  intPtr(3),
		Colors:       strPtr("4"),
	})

	if record.ArenaID != 68662 || record.SearchValue != "Lightning Bolt" || record.CardName != "번개 화살" {
		t.Errorf("identity fields = %+v", record)
	}
	if record.Rarity != models.RarityCommon || record.Color != models.ColorRed {
		t.Errorf("rarity/color = %s/%s", record.Rarity, record.Color)
	}
	if record.Type != "순간마법" || record.SubType != "" {
		t.Errorf("type = %q, sub_type = %q", record.Type, record.SubType)
	}
	if record.FlavorText != "그 불꽃은 빨랐다." {
		t.Errorf("flavor_text = %q", record.FlavorText)
	}
	if record.Text != "번개 화살은 아무 목표에게 피해 3점을 입힌다." || record.AnnotatedText != record.Text {
		t.Errorf("text = %q, annotated = %q", record.Text, record.AnnotatedText)
	}
}

func TestCardRecordBuilder_NoTextNoFlavor(t *testing.T) {
	builder := testBuilder()

	record := builder.BuildOne(&models.CardRow{
		GrpID:        70000,
		TitleID:      1001,
		TypeTextID:   2000,
		ManaValue:    intPtr(1),
		FlavorTextID: NoFlavorTextID,
		RarityOrder:  intPtr(2),
		Colors:       strPtr("3"),
	})

	if record.Color != models.ColorBlack || record.Rarity != models.RarityUncommon {
		t.Errorf("rarity/color = %s/%s", record.Rarity, record.Color)
	}
	if record.FlavorText != "" {
		t.Errorf("placeholder flavor id should be skipped, got %q", record.FlavorText)
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{`"text"`, `"annotationed_text"`, `"flavor_text"`} {
		if strings.Contains(string(data), key) {
			t.Errorf("record should omit %s: %s", key, data)
		}
	}
}

func TestCardRecordBuilder_BuildDeduplicates(t *testing.T) {
	builder := testBuilder()

	records := builder.Build([]models.CardRow{
		{GrpID: 100, TitleID: 1000, FlavorTextID: NoFlavorTextID},
		{GrpID: 101, TitleID: 1001, FlavorTextID: NoFlavorTextID},
		{GrpID: 102, TitleID: 1000, FlavorTextID: NoFlavorTextID},
	})

	if len(records) != 2 {
		t.Fatalf("Build() returned %d records, want 2", len(records))
	}
	if records[0].ArenaID != 100 || records[1].ArenaID != 101 {
		t.Errorf("Build() kept %d and %d, want the first printing of each title", records[0].ArenaID, records[1].ArenaID)
	}
	if records[0].Color != models.ColorColorless {
		t.Errorf("missing colors should map to colorless, got %s", records[0].Color)
	}
}
