package services

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/codyseavey/mtga-ko/internal/models"
)

// Key namespaces of the loc table that hold keyword annotations
const (
	keywordKeyPrefix     = "AbilityHanger/Keyword/"
	abilityWordKeyPrefix = "AbilityHanger/AbilityWord/"
	annotationKeyPattern = "AbilityHanger/%"

	bodySuffix      = "_body"
	titleSuffix     = "_title"
	referenceMarker = "reference"
)

// AnnotationDictionary maps keyword cores to their localized variants.
// It is built once per export and never modified afterwards; cores keep
// the order in which the loc table listed them.
type AnnotationDictionary struct {
	cores []*models.AnnotationCore
	index map[string]*models.AnnotationCore
}

// Cores returns the cores in build order.
func (d *AnnotationDictionary) Cores() []*models.AnnotationCore {
	if d == nil {
		return nil
	}
	return d.cores
}

// Core returns the core with the given key, or nil.
func (d *AnnotationDictionary) Core(key string) *models.AnnotationCore {
	if d == nil {
		return nil
	}
	return d.index[key]
}

// Len returns the number of cores.
func (d *AnnotationDictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.cores)
}

// ExtractCoreKey derives the core key and variant type from a loc key.
// "AbilityHanger/Keyword/Ward_Reference_Body" yields ("ward", body).
func ExtractCoreKey(key string) (string, models.VariantType) {
	core := strings.ToLower(key)
	core = strings.ReplaceAll(core, strings.ToLower(keywordKeyPrefix), "")
	core = strings.ReplaceAll(core, strings.ToLower(abilityWordKeyPrefix), "")

	variantType := models.VariantBody
	switch {
	case strings.HasSuffix(core, bodySuffix):
		core = strings.TrimSuffix(core, bodySuffix)
	case strings.HasSuffix(core, titleSuffix):
		variantType = models.VariantTitle
		core = strings.TrimSuffix(core, titleSuffix)
	}

	core = strings.ReplaceAll(core, referenceMarker, "")
	return strings.Trim(core, "_"), variantType
}

func isAnnotationKey(key string) bool {
	return strings.HasPrefix(key, keywordKeyPrefix) || strings.HasPrefix(key, abilityWordKeyPrefix)
}

func lastKeySegment(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// BuildAnnotationDictionary groups keyword localization rows into cores.
// Rows are consumed in table order, which decides title/body pairing.
func BuildAnnotationDictionary(rows []models.KeywordLocalization) *AnnotationDictionary {
	dict := &AnnotationDictionary{index: make(map[string]*models.AnnotationCore)}

	for _, row := range rows {
		if !isAnnotationKey(row.Key) {
			continue
		}

		coreKey, variantType := ExtractCoreKey(row.Key)
		koKR := ""
		if row.KoKR != nil {
			koKR = NormalizeAnnotationText(*row.KoKR)
		}
		enUS := ""
		if row.EnUS != nil {
			enUS = CleanAnnotationTitle(*row.EnUS)
		}

		core := dict.index[coreKey]
		if core == nil {
			core = &models.AnnotationCore{Key: coreKey}
			dict.index[coreKey] = core
			dict.cores = append(dict.cores, core)
		}

		core.Variants = append(core.Variants, &models.AnnotationVariant{
			Key:  row.Key,
			Type: variantType,
			EnUS: enUS,
			KoKR: koKR,
		})

		// A bare key ("Crew1") is both the trigger and its explanation.
		if variantType == models.VariantBody && !strings.Contains(row.Key, "_Body") {
			core.Variants = append(core.Variants, &models.AnnotationVariant{
				Key:  row.Key,
				Type: models.VariantTitle,
				EnUS: lastKeySegment(row.Key),
				KoKR: koKR,
			})
		}
	}

	for _, core := range dict.cores {
		if core.HasType(models.VariantTitle) {
			continue
		}
		body := firstVariantOfType(core, models.VariantBody)
		if body == nil {
			continue
		}
		// Matching-only title: no Korean text of its own.
		core.Variants = append(core.Variants, &models.AnnotationVariant{
			Key:  body.Key,
			Type: models.VariantTitle,
			EnUS: strings.ReplaceAll(lastKeySegment(body.Key), "_Body", ""),
		})
	}

	// A core without Korean explanation text can never annotate anything.
	kept := dict.cores[:0]
	for _, core := range dict.cores {
		if core.FirstBody() == nil {
			delete(dict.index, core.Key)
			continue
		}
		pairTitles(core)
		kept = append(kept, core)
	}
	dict.cores = kept

	return dict
}

func firstVariantOfType(core *models.AnnotationCore, t models.VariantType) *models.AnnotationVariant {
	for _, v := range core.Variants {
		if v.Type == t {
			return v
		}
	}
	return nil
}

// pairTitles links each title to the body listed immediately before it,
// when that body has Korean text.
func pairTitles(core *models.AnnotationCore) {
	for i, v := range core.Variants {
		if v.Type != models.VariantTitle || i == 0 {
			continue
		}
		prev := core.Variants[i-1]
		if prev.Type == models.VariantBody && prev.KoKR != "" {
			v.Pair = prev
		}
	}
}

// LoadAnnotationDictionary reads the keyword rows of a client localization
// database and builds the dictionary from them.
func LoadAnnotationDictionary(db *gorm.DB) (*AnnotationDictionary, error) {
	var rows []models.KeywordLocalization
	if err := db.Where("Key LIKE ?", annotationKeyPattern).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read keyword localizations: %w", err)
	}

	dict := BuildAnnotationDictionary(rows)
	log.Printf("Annotation dictionary: built %d cores from %d rows", dict.Len(), len(rows))
	return dict, nil
}
