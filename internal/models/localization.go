package models

import (
	"strconv"
	"strings"
)

// Locale identifies one of the two client locales this project exports.
type Locale string

const (
	LocaleEnglish Locale = "enUS"
	LocaleKorean  Locale = "koKR"
)

// Formatted flag values on localization rows. Lower wins on lookup.
const (
	FormattedPlain       = 0
	FormattedRich        = 1
	FormattedUnreviewed  = 2
	UnreviewedTextMarker = "#"
)

// LocalizationEntry is one localized string row. The card database keeps
// one table per locale with the same shape.
type LocalizationEntry struct {
	LocID     int    `gorm:"column:LocId;index"`
	Formatted int    `gorm:"column:Formatted"`
	Text      string `gorm:"column:Loc"`
}

// LocalizationTable returns the card database table holding a locale's rows.
func LocalizationTable(locale Locale) string {
	return "Localizations_" + string(locale)
}

// Ability is one row of the Abilities table.
type Ability struct {
	ID          int     `gorm:"column:Id;primaryKey"`
	TextID      int     `gorm:"column:TextId;index"`
	LoyaltyCost *string `gorm:"column:LoyaltyCost"`
}

func (Ability) TableName() string {
	return "Abilities"
}

// KeywordLocalization is one row of the client localization database's
// loc table, keyed by a namespaced path such as
// "AbilityHanger/Keyword/Flying_Body".
type KeywordLocalization struct {
	Key  string  `gorm:"column:Key"`
	EnUS *string `gorm:"column:enUS"`
	KoKR *string `gorm:"column:koKR"`
}

func (KeywordLocalization) TableName() string {
	return "loc"
}

// AbilityReference is one token of a card's AbilityIds column.
type AbilityReference struct {
	Raw       string
	AbilityID string // empty when the token has no table prefix
	LocID     int
}

// ParseAbilityReferences splits an AbilityIds column into references,
// keeping order. A token whose text id is not numeric keeps its slot
// with LocID 0, which never resolves to localized text.
func ParseAbilityReferences(abilityIDs string) []AbilityReference {
	if strings.TrimSpace(abilityIDs) == "" {
		return nil
	}
	tokens := strings.Split(abilityIDs, ",")
	refs := make([]AbilityReference, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		parts := strings.Split(token, ":")
		locID, _ := strconv.Atoi(parts[len(parts)-1])
		ref := AbilityReference{Raw: token, LocID: locID}
		if len(parts) > 1 {
			ref.AbilityID = parts[0]
		}
		refs = append(refs, ref)
	}
	return refs
}

// HasSubtype reports whether a comma separated Subtypes column contains id.
func HasSubtype(subtypes, id string) bool {
	for _, s := range strings.Split(subtypes, ",") {
		if strings.TrimSpace(s) == id {
			return true
		}
	}
	return false
}
