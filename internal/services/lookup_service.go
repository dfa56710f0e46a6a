package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"

	"github.com/codyseavey/mtga-ko/internal/metrics"
	"github.com/codyseavey/mtga-ko/internal/models"
)

const (
	lookupUserAgent      = "Mozilla/5.0 (compatible; mtga-ko/1.0)"
	lookupFetchTimeout   = 30 * time.Second
	maxLoggedPayloadSize = 2048
)

// LookupStats describes the document currently served.
type LookupStats struct {
	Records  int       `json:"records"`
	Checksum string    `json:"checksum"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// LookupService answers exact, case-insensitive card queries against an
// exported document held in memory.
type LookupService struct {
	path      string
	remoteURL string
	client    *http.Client

	mu       sync.RWMutex
	records  []models.CardRecord
	index    map[string]int
	checksum uint64
	source   string
	loadedAt time.Time
}

// NewLookupService serves the document at path. When the file is missing
// and remoteURL is set, the document is downloaded and cached at path.
func NewLookupService(path, remoteURL string) *LookupService {
	return &LookupService{
		path:      path,
		remoteURL: remoteURL,
		client: &http.Client{
			Timeout: lookupFetchTimeout,
		},
		index: make(map[string]int),
	}
}

// foldKey is the comparison form of a query or a stored name.
func foldKey(s string) string {
	return cases.Fold().String(s)
}

// Load (re)reads the document. When the first load fails the service
// serves an empty index; a failed reload keeps the records already served.
// The error is returned for logging either way.
func (s *LookupService) Load(ctx context.Context) error {
	data, source, err := s.readDocument(ctx)
	if err != nil {
		return s.loadFailed(err)
	}

	var records []models.CardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Lookup service: JSON decode error: %v", err)
		log.Printf("Lookup service: response content: %s", truncatePayload(data))
		return s.loadFailed(fmt.Errorf("failed to decode card document: %w", err))
	}

	s.install(records, xxhash.Sum64(data), source)
	log.Printf("Lookup service: loaded %d records from %s", len(records), source)
	return nil
}

func (s *LookupService) loadFailed(err error) error {
	s.mu.RLock()
	loaded, count, source := !s.loadedAt.IsZero(), len(s.records), s.source
	s.mu.RUnlock()

	if !loaded {
		s.install(nil, 0, "")
		return err
	}
	log.Printf("Lookup service: reload failed, keeping %d records from %s", count, source)
	return err
}

func (s *LookupService) readDocument(ctx context.Context) ([]byte, string, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		return data, s.path, nil
	}
	if !errors.Is(err, os.ErrNotExist) || s.remoteURL == "" {
		return nil, "", fmt.Errorf("failed to read card document: %w", err)
	}

	log.Printf("Lookup service: %s not found, fetching %s", s.path, s.remoteURL)
	data, err = s.fetchRemote(ctx)
	if err != nil {
		return nil, "", err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		// Serving still works, only the cache is lost.
		log.Printf("Lookup service: failed to cache document at %s: %v", s.path, err)
	}
	return data, s.remoteURL, nil
}

func (s *LookupService) fetchRemote(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupFetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", s.remoteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", lookupUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card document fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read card document: %w", err)
	}
	return data, nil
}

// LoadRecords serves records directly, bypassing the file.
func (s *LookupService) LoadRecords(records []models.CardRecord) {
	s.install(records, 0, "memory")
}

func (s *LookupService) install(records []models.CardRecord, checksum uint64, source string) {
	index := make(map[string]int, 2*len(records))
	// English titles take precedence over Korean names on collisions.
	for i := range records {
		if key := foldKey(records[i].SearchValue); key != "" {
			if _, exists := index[key]; !exists {
				index[key] = i
			}
		}
	}
	for i := range records {
		if key := foldKey(records[i].CardName); key != "" {
			if _, exists := index[key]; !exists {
				index[key] = i
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.index = index
	s.checksum = checksum
	s.source = source
	s.loadedAt = time.Now()
	metrics.LookupRecordsLoaded.Set(float64(len(records)))
}

// Lookup finds the record whose English title or Korean name equals query,
// ignoring case.
func (s *LookupService) Lookup(query string) (models.CardRecord, bool) {
	key := foldKey(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[key]
	if !ok {
		metrics.LookupRequestsTotal.WithLabelValues("miss").Inc()
		return models.CardRecord{}, false
	}
	metrics.LookupRequestsTotal.WithLabelValues("hit").Inc()
	return s.records[i], true
}

// Path returns the local document path.
func (s *LookupService) Path() string {
	return s.path
}

// Stats reports what is being served.
func (s *LookupService) Stats() LookupStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return LookupStats{
		Records:  len(s.records),
		Checksum: fmt.Sprintf("%016x", s.checksum),
		Source:   s.source,
		LoadedAt: s.loadedAt,
	}
}

func truncatePayload(data []byte) string {
	if len(data) <= maxLoggedPayloadSize {
		return string(data)
	}
	return string(data[:maxLoggedPayloadSize]) + "...(truncated)"
}
