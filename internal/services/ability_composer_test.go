package services

import (
	"testing"

	"github.com/codyseavey/mtga-ko/internal/models"
)

// fakeLocalizer serves localized text from memory.
type fakeLocalizer map[models.Locale]map[int]string

func (f fakeLocalizer) Localize(locID int, locale models.Locale) (string, bool) {
	text, ok := f[locale][locID]
	return text, ok && text != ""
}

// fakeAbilities serves loyalty costs keyed by the raw AbilityIds token.
type fakeAbilities map[string]string

func (f fakeAbilities) LoyaltyCost(ref models.AbilityReference) (string, bool) {
	cost, ok := f[ref.Raw]
	return cost, ok
}

func newTestComposer(loc fakeLocalizer, abilities fakeAbilities, rows []models.KeywordLocalization) *AbilityComposer {
	resolver := NewAnnotationResolver(BuildAnnotationDictionary(rows), ResolverOptions{})
	return NewAbilityComposer(loc, abilities, resolver)
}

func TestAbilityComposer_Compose(t *testing.T) {
	loc := fakeLocalizer{
		models.LocaleEnglish: {
			100:                  "Flying",
			101:                  "Flying",
			102:                  "Draw a card.",
			200:                  "Hexproof",
			ForetellAbilityLocID: "Foretell",
		},
		models.LocaleKorean: {
			100:                  "비행",
			101:                  "비행",
			102:                  "카드 한 장을 뽑는다.",
			103:                  "생물을 파괴한다.",
			200:                  "방호",
			ForetellAbilityLocID: "예고",
		},
	}
	rows := []models.KeywordLocalization{
		keywordRow("AbilityHanger/Keyword/Flying_Body", "", "이 생물은 비행이나 도달 능력이 없는 생물에게 방어될 수 없다."),
		keywordRow("AbilityHanger/Keyword/Flying_Title", "Flying", "비행"),
		keywordRow("AbilityHanger/Keyword/Hexproof_Body", "", "X"),
		keywordRow("AbilityHanger/Keyword/Hexproof_Title", "Hexproof", "방호"),
	}
	abilities := fakeAbilities{"7:102": "+1", "8:103": "−3"}

	tests := []struct {
		name          string
		abilityIDs    string
		subtypes      string
		wantPlain     string
		wantAnnotated string
	}{
		{
			name:          "empty column",
			abilityIDs:    "",
			wantPlain:     "",
			wantAnnotated: "",
		},
		{
			name:          "keyword gets a footnote",
			abilityIDs:    "1:100,2:102",
			wantPlain:     "비행\n카드 한 장을 뽑는다.",
			wantAnnotated: "비행 [sup][이 생물은 비행이나 도달 능력이 없는 생물에게 방어될 수 없다.][/sup]\n카드 한 장을 뽑는다.",
		},
		{
			name:          "same core is annotated once per card",
			abilityIDs:    "1:100,2:101",
			wantPlain:     "비행\n비행",
			wantAnnotated: "비행 [sup][이 생물은 비행이나 도달 능력이 없는 생물에게 방어될 수 없다.][/sup]\n비행",
		},
		{
			name:          "placeholder body is never a footnote",
			abilityIDs:    "3:200",
			wantPlain:     "방호",
			wantAnnotated: "방호",
		},
		{
			name:          "loyalty costs prefix the line",
			abilityIDs:    "7:102,8:103",
			wantPlain:     "+1 : 카드 한 장을 뽑는다.\n−3 : 생물을 파괴한다.",
			wantAnnotated: "+1 : 카드 한 장을 뽑는다.\n−3 : 생물을 파괴한다.",
		},
		{
			name:          "saga chapters are numbered",
			abilityIDs:    "1:102,2:103,3:200",
			subtypes:      "12,347",
			wantPlain:     "1 — 카드 한 장을 뽑는다.\n2 — 생물을 파괴한다.\n3 — 방호",
			wantAnnotated: "1 — 카드 한 장을 뽑는다.\n2 — 생물을 파괴한다.\n3 — 방호",
		},
		{
			name:          "saga foretell line is not numbered",
			abilityIDs:    "614628,1:102,2:103",
			subtypes:      "347",
			wantPlain:     "예고\n1 — 카드 한 장을 뽑는다.\n2 — 생물을 파괴한다.",
			wantAnnotated: "예고\n1 — 카드 한 장을 뽑는다.\n2 — 생물을 파괴한다.",
		},
		{
			name:          "missing korean text drops the line but keeps chapter positions",
			abilityIDs:    "1:102,2:999,3:103",
			subtypes:      "347",
			wantPlain:     "1 — 카드 한 장을 뽑는다.\n3 — 생물을 파괴한다.",
			wantAnnotated: "1 — 카드 한 장을 뽑는다.\n3 — 생물을 파괴한다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := newTestComposer(loc, abilities, rows)
			plain, annotated := composer.Compose(tt.abilityIDs, tt.subtypes)
			if plain != tt.wantPlain {
				t.Errorf("plain = %q, want %q", plain, tt.wantPlain)
			}
			if annotated != tt.wantAnnotated {
				t.Errorf("annotated = %q, want %q", annotated, tt.wantAnnotated)
			}
		})
	}
}

func TestAbilityComposer_DroppedLineStillConsumesCore(t *testing.T) {
	loc := fakeLocalizer{
		models.LocaleEnglish: {100: "Flying", 101: "Flying"},
		models.LocaleKorean:  {101: "비행"},
	}
	rows := []models.KeywordLocalization{
		keywordRow("AbilityHanger/Keyword/Flying_Body", "", "비행 설명"),
		keywordRow("AbilityHanger/Keyword/Flying_Title", "Flying", "비행"),
	}

	composer := newTestComposer(loc, fakeAbilities{}, rows)
	plain, annotated := composer.Compose("1:100,2:101", "")
	if plain != "비행" || annotated != "비행" {
		t.Errorf("Compose() = (%q, %q), want the footnote spent on the dropped line", plain, annotated)
	}
}
