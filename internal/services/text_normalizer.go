package services

import (
	"regexp"
	"strings"
	"unicode"
)

// Phrases substituted for client markup in Korean text
const (
	TapPhrase       = "탭"
	CostLabelPhrase = " 비용 "
)

var (
	braceSegmentPattern = regexp.MustCompile(`\{([^}]*)\}`)
	manaSymbolsPattern  = regexp.MustCompile(`^(?:o[0-9A-Z]+)+$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
	markupTagPattern    = regexp.MustCompile(`<[^>]*>`)
	hashPrefixPattern   = regexp.MustCompile(`(^|\s)#+(\S)`)
	spriteTagPattern    = regexp.MustCompile(`<sprite="[^"]+"\s+name="([^"]+)".*?>`)
	spriteSymbolPattern = regexp.MustCompile(`^x([0-9A-Z]+)$`)
	hybridPairPattern   = regexp.MustCompile(`^[WUBRG]{2}$`)
	abilityCostPattern  = regexp.MustCompile(`\s*,?\s*\{abilityCost\}\s*,?\s*`)
	bareManaDigit       = regexp.MustCompile(`\bo(\d)`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// StripCostBraces turns brace-delimited cost symbols into plain text:
// {oT} becomes the tap phrase, {o2oW} becomes 2W, {3} becomes 3. Any other
// braced template keeps its inner text without the braces.
func StripCostBraces(text string) string {
	return braceSegmentPattern.ReplaceAllStringFunc(text, func(segment string) string {
		inside := segment[1 : len(segment)-1]
		switch {
		case inside == "oT":
			return TapPhrase
		case manaSymbolsPattern.MatchString(inside):
			return strings.ReplaceAll(inside, "o", "")
		case digitsPattern.MatchString(inside):
			return inside
		case strings.HasPrefix(inside, "o"):
			return inside[1:]
		default:
			return inside
		}
	})
}

// TagsToBrackets wraps every markup tag in square brackets so raw tags stay
// visible in exported text. Tags that are already wrapped are left alone.
func TagsToBrackets(text string) string {
	matches := markupTagPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 2*len(matches))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])
		wrapped := start > 0 && text[start-1] == '[' && end < len(text) && text[end] == ']'
		if wrapped {
			b.WriteString(text[start:end])
		} else {
			b.WriteByte('[')
			b.WriteString(text[start:end])
			b.WriteByte(']')
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// StripHashPrefix drops the leading '#' from any whitespace-delimited token.
func StripHashPrefix(text string) string {
	return hashPrefixPattern.ReplaceAllString(text, "${1}${2}")
}

// StripSpriteTags replaces inline mana icon tags with a readable phrase.
func StripSpriteTags(text string) string {
	return spriteTagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		m := spriteTagPattern.FindStringSubmatch(tag)
		return spritePhrase(m[1])
	})
}

func spritePhrase(name string) string {
	switch name {
	case "{manaType0}":
		return "좌측 배경색의 유색마나"
	case "{manaType1}":
		return "우측 배경색의 유색마나"
	case "{manaCombined}":
		return "혼합 피렉시아 마나"
	case "xP{color}":
		return "유색 피렉시아 마나"
	case "x{color}":
		return "유색마나"
	}

	m := spriteSymbolPattern.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	value := m[1]
	switch {
	case value == "T":
		return TapPhrase
	case hybridPairPattern.MatchString(value):
		return value[:1] + " 또는 " + value[1:]
	default:
		return value
	}
}

// ReplaceAbilityCostToken replaces the {abilityCost} placeholder, together
// with any comma around it, by label. An empty label removes it.
func ReplaceAbilityCostToken(text, label string) string {
	return abilityCostPattern.ReplaceAllLiteralString(text, label)
}

// stripBareManaDigits turns o-marked digits left outside braces ("o2")
// into bare digits unless another digit or capital follows.
func stripBareManaDigits(text string) string {
	matches := bareManaDigit.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		end := m[1]
		if end < len(text) {
			next := rune(text[end])
			if unicode.IsDigit(next) || (next >= 'A' && next <= 'Z') {
				continue
			}
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(text[m[2]:m[3]])
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// CleanLocalizedText is the write-back pass applied to every Korean card
// string before lookups. Sprite and cost-token substitution run before
// brace stripping so their output is not processed twice.
func CleanLocalizedText(text string) string {
	text = StripSpriteTags(text)
	text = ReplaceAbilityCostToken(text, "")
	text = StripCostBraces(text)
	text = TagsToBrackets(text)
	return StripHashPrefix(text)
}

// NormalizeAnnotationText cleans the Korean explanation of a keyword.
func NormalizeAnnotationText(text string) string {
	text = StripSpriteTags(text)
	text = ReplaceAbilityCostToken(text, CostLabelPhrase)
	text = StripCostBraces(text)
	text = stripBareManaDigits(text)
	return strings.TrimSpace(text)
}

// CleanAnnotationTitle cleans the English trigger text of a keyword.
func CleanAnnotationTitle(text string) string {
	text = braceSegmentPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "!", "")
	return strings.TrimSpace(text)
}

// matchKey reduces text to the form titles are compared in: templated
// segments dropped, lower case, no whitespace at all.
func matchKey(text string) string {
	text = braceSegmentPattern.ReplaceAllString(text, "")
	return whitespacePattern.ReplaceAllString(strings.ToLower(text), "")
}
