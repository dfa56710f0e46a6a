package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// ReloadWorker re-reads the served document whenever the exporter replaces it.
type ReloadWorker struct {
	lookup   *LookupService
	interval time.Duration

	mu          sync.Mutex
	lastModTime time.Time
	reloads     int
}

func NewReloadWorker(lookup *LookupService, interval time.Duration) *ReloadWorker {
	return &ReloadWorker{
		lookup:   lookup,
		interval: interval,
	}
}

// Start polls the document until ctx is cancelled.
func (w *ReloadWorker) Start(ctx context.Context) {
	log.Printf("Reload worker started: checking %s every %v", w.lookup.Path(), w.interval)

	// The document was loaded at startup; only later changes count.
	if modTime, err := w.modTime(); err == nil {
		w.mu.Lock()
		w.lastModTime = modTime
		w.mu.Unlock()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reload worker stopping...")
			return
		case <-ticker.C:
			if reloaded, err := w.CheckOnce(ctx); err != nil {
				log.Printf("Reload worker: check failed: %v", err)
			} else if reloaded {
				log.Printf("Reload worker: reloaded %s (%d records)", w.lookup.Path(), w.lookup.Stats().Records)
			}
		}
	}
}

// CheckOnce reloads the document if its modification time changed since
// the last check.
func (w *ReloadWorker) CheckOnce(ctx context.Context) (bool, error) {
	modTime, err := w.modTime()
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if modTime.Equal(w.lastModTime) {
		return false, nil
	}
	if err := w.lookup.Load(ctx); err != nil {
		return false, err
	}
	w.lastModTime = modTime
	w.reloads++
	return true, nil
}

// Reloads returns how many times the document has been reloaded.
func (w *ReloadWorker) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *ReloadWorker) modTime() (time.Time, error) {
	info, err := os.Stat(w.lookup.Path())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat card document: %w", err)
	}
	return info.ModTime(), nil
}
