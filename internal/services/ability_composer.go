package services

import (
	"fmt"
	"strings"

	"github.com/codyseavey/mtga-ko/internal/metrics"
	"github.com/codyseavey/mtga-ko/internal/models"
)

const (
	// SagaSubtypeID marks a card whose abilities are numbered chapters.
	SagaSubtypeID = "347"
	// ForetellAbilityLocID is the unnumbered preview line a saga may open with.
	ForetellAbilityLocID = 614628

	// placeholderAnnotation is a body text that must never become a footnote
	placeholderAnnotation = "X"
)

// AbilityComposer renders a card's abilities as Korean text, once plain and
// once with keyword explanations appended as footnotes.
type AbilityComposer struct {
	localizer Localizer
	abilities AbilityLookup
	resolver  *AnnotationResolver
}

func NewAbilityComposer(localizer Localizer, abilities AbilityLookup, resolver *AnnotationResolver) *AbilityComposer {
	return &AbilityComposer{
		localizer: localizer,
		abilities: abilities,
		resolver:  resolver,
	}
}

// Compose walks the AbilityIds column in order. Abilities without Korean
// text are left out of both renderings.
func (c *AbilityComposer) Compose(abilityIDs, subtypes string) (string, string) {
	refs := models.ParseAbilityReferences(abilityIDs)
	if len(refs) == 0 {
		return "", ""
	}

	used := make(UsedCoreSet)
	isSaga := models.HasSubtype(subtypes, SagaSubtypeID)
	foretellFirst := refs[0].LocID == ForetellAbilityLocID

	plain := make([]string, 0, len(refs))
	annotated := make([]string, 0, len(refs))

	for i, ref := range refs {
		loyaltyCost, hasLoyalty := c.abilities.LoyaltyCost(ref)

		var annotation string
		if enUS, ok := c.localizer.Localize(ref.LocID, models.LocaleEnglish); ok {
			annotation, _ = c.resolver.Resolve(enUS, used)
		}

		koKR, ok := c.localizer.Localize(ref.LocID, models.LocaleKorean)
		if !ok {
			metrics.AbilityLinesDropped.Inc()
			continue
		}

		var line string
		switch {
		case isSaga && ref.LocID == ForetellAbilityLocID:
			// Printed verbatim: no chapter number, no footnote.
			plain = append(plain, koKR)
			annotated = append(annotated, koKR)
			continue
		case isSaga:
			chapter := i + 1
			if foretellFirst {
				chapter--
			}
			line = fmt.Sprintf("%d — %s", chapter, koKR)
		case hasLoyalty:
			line = fmt.Sprintf("%s : %s", loyaltyCost, koKR)
		default:
			line = koKR
		}

		plain = append(plain, line)
		annotated = append(annotated, withFootnote(line, annotation))
	}

	return strings.Join(plain, "\n"), strings.Join(annotated, "\n")
}

func withFootnote(line, annotation string) string {
	if annotation == "" || annotation == placeholderAnnotation {
		return line
	}
	metrics.AnnotationsAttached.Inc()
	return line + " [sup][" + annotation + "][/sup]"
}
