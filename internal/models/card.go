package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CardRow is one row of the client card database's Cards table.
// Nullable columns are pointers so gorm can scan NULLs.
type CardRow struct {
	GrpID         int     `gorm:"column:GrpId;primaryKey"`
	TitleID       int     `gorm:"column:TitleId"`
	TypeTextID    int     `gorm:"column:TypeTextId"`
	SubtypeTextID int     `gorm:"column:SubtypeTextId"`
	ManaValue     *int    `gorm:"column:Order_CMCWithXLast"`
	Power         *string `gorm:"column:Power"`
	Toughness     *string `gorm:"column:Toughness"`
	FlavorTextID  int     `gorm:"column:FlavorTextId"`
	AbilityIDs    *string `gorm:"column:AbilityIds"`
	Subtypes      *string `gorm:"column:Subtypes"`
	RarityOrder   *int    `gorm:"column:Order_MythicToCommon"`
	Colors        *string `gorm:"column:Colors"`
}

func (CardRow) TableName() string {
	return "Cards"
}

// MinCardGrpID filters out the placeholder rows the client keeps at the
// start of the Cards table.
const MinCardGrpID = 10

// CardRecord is one entry of the exported card document.
// Optional fields are omitted, never null, when they do not apply.
type CardRecord struct {
	ArenaID     int    `json:"arena_id,omitempty"`
	SearchValue string `json:"search_value"`
	CardName    string `json:"card_name,omitempty"`
	Rarity      Rarity `json:"rarity,omitempty"`
	Color       Color  `json:"color,omitempty"`
	ManaValue   *int   `json:"mana_value,omitempty"`
	Type        string `json:"type,omitempty"`
	SubType     string `json:"sub_type,omitempty"`
	Power       string `json:"power,omitempty"`
	Toughness   string `json:"toughness,omitempty"`
	FlavorText  string `json:"flavor_text,omitempty"`
	Text        string `json:"text,omitempty"`
	// Wire name kept for the clients already reading the published document.
	AnnotatedText string `json:"annotationed_text,omitempty"`
}

const (
	PingSearchValue = "ping"
	PingText        = "성공"
)

// PingRecord is the liveness entry appended after every card in an export.
func PingRecord() CardRecord {
	return CardRecord{SearchValue: PingSearchValue, Text: PingText}
}

// IsPing reports whether r is the liveness entry rather than a card.
func (r CardRecord) IsPing() bool {
	return r.SearchValue == PingSearchValue && r.ArenaID == 0
}

// MarshalJSON writes card_name on every card, null when the card has no
// Korean title. The ping entry keeps only its search value and text.
// Markup in text is left unescaped.
func (r CardRecord) MarshalJSON() ([]byte, error) {
	type record CardRecord
	if r.IsPing() {
		return encodeUnescaped(record(r))
	}

	var name *string
	if r.CardName != "" {
		name = &r.CardName
	}
	return encodeUnescaped(struct {
		record
		CardName *string `json:"card_name"`
	}{record(r), name})
}

func encodeUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Rarity is the Korean rarity label shown to players
type Rarity string

const (
	RarityMythic   Rarity = "미식레어"
	RarityRare     Rarity = "레어"
	RarityUncommon Rarity = "언커먼"
	RarityCommon   Rarity = "커먼"
)

// MapRarityOrder maps the client's Order_MythicToCommon tier to a label.
// A missing tier counts as common.
func MapRarityOrder(order *int) Rarity {
	if order == nil {
		return RarityCommon
	}
	switch *order {
	case 0:
		return RarityMythic
	case 1:
		return RarityRare
	case 2:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// Color is the Korean color label shown to players
type Color string

const (
	ColorWhite      Color = "백색"
	ColorBlue       Color = "청색"
	ColorBlack      Color = "흑색"
	ColorRed        Color = "적색"
	ColorGreen      Color = "녹색"
	ColorMulticolor Color = "다색"
	ColorColorless  Color = "무색"
)

var colorByID = map[string]Color{
	"1": ColorWhite,
	"2": ColorBlue,
	"3": ColorBlack,
	"4": ColorRed,
	"5": ColorGreen,
}

// MapColors maps the comma separated Colors column to a label.
// Unknown single ids fall back to colorless.
func MapColors(colors *string) Color {
	if colors == nil || strings.TrimSpace(*colors) == "" {
		return ColorColorless
	}
	ids := strings.Split(*colors, ",")
	if len(ids) > 1 {
		return ColorMulticolor
	}
	if c, ok := colorByID[strings.TrimSpace(ids[0])]; ok {
		return c
	}
	return ColorColorless
}
