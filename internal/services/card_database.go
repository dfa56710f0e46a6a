package services

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/codyseavey/mtga-ko/internal/metrics"
	"github.com/codyseavey/mtga-ko/internal/models"
)

// Localizer resolves a localization id to text in one locale.
type Localizer interface {
	Localize(locID int, locale models.Locale) (string, bool)
}

// AbilityLookup resolves the loyalty cost printed before an ability.
type AbilityLookup interface {
	LoyaltyCost(ref models.AbilityReference) (string, bool)
}

const localizationCacheSize = 20000

type localizationKey struct {
	locID  int
	locale models.Locale
}

type cachedText struct {
	text string
	ok   bool
}

// CardDatabase reads one client card database snapshot. Type and subtype
// ids repeat across thousands of cards, so lookups go through an LRU.
type CardDatabase struct {
	db    *gorm.DB
	cache *lru.Cache[localizationKey, cachedText]

	mu      sync.Mutex
	lastErr error
}

func NewCardDatabase(db *gorm.DB) (*CardDatabase, error) {
	cache, err := lru.New[localizationKey, cachedText](localizationCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create localization cache: %w", err)
	}
	return &CardDatabase{db: db, cache: cache}, nil
}

// Localize returns the row with the lowest Formatted flag for locID.
// Query failures are remembered and reported by Err.
func (c *CardDatabase) Localize(locID int, locale models.Locale) (string, bool) {
	if locID == 0 {
		return "", false
	}
	key := localizationKey{locID: locID, locale: locale}
	if hit, ok := c.cache.Get(key); ok {
		metrics.LocalizationCacheHits.Inc()
		return hit.text, hit.ok
	}
	metrics.LocalizationCacheMisses.Inc()

	var entries []models.LocalizationEntry
	err := c.db.Table(models.LocalizationTable(locale)).
		Where("LocId = ?", locID).
		Order("Formatted ASC").
		Limit(1).
		Find(&entries).Error
	if err != nil {
		c.recordErr(fmt.Errorf("failed to localize %d (%s): %w", locID, locale, err))
		return "", false
	}

	result := cachedText{}
	if len(entries) > 0 && entries[0].Text != "" {
		result = cachedText{text: entries[0].Text, ok: true}
	}
	c.cache.Add(key, result)
	return result.text, result.ok
}

// LoyaltyCost looks the ability up by its table id when the reference has
// one, otherwise by text id.
func (c *CardDatabase) LoyaltyCost(ref models.AbilityReference) (string, bool) {
	var abilities []models.Ability
	query := c.db.Limit(1)
	if id, err := strconv.Atoi(ref.AbilityID); err == nil && ref.AbilityID != "" {
		query = query.Where("Id = ?", id)
	} else {
		query = query.Where("TextId = ?", ref.LocID)
	}
	if err := query.Find(&abilities).Error; err != nil {
		c.recordErr(fmt.Errorf("failed to read ability %s: %w", ref.Raw, err))
		return "", false
	}
	if len(abilities) == 0 || abilities[0].LoyaltyCost == nil || *abilities[0].LoyaltyCost == "" {
		return "", false
	}
	return *abilities[0].LoyaltyCost, true
}

// Cards returns every real card row in table order.
func (c *CardDatabase) Cards() ([]models.CardRow, error) {
	var rows []models.CardRow
	if err := c.db.Where("GrpId > ?", models.MinCardGrpID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return rows, nil
}

// Err returns the first query error seen by Localize or LoyaltyCost.
func (c *CardDatabase) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *CardDatabase) recordErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr == nil {
		log.Printf("Card database: %v", err)
		c.lastErr = err
	}
}
