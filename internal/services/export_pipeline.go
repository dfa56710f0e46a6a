package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codyseavey/mtga-ko/internal/database"
	"github.com/codyseavey/mtga-ko/internal/metrics"
)

// Snapshot file name patterns written by the game client
const (
	CardDatabasePattern = "Raw_CardDatabase_*.mtga"
	LocalizationPattern = "Raw_ClientLocalization_*.mtga"
)

// ErrNoSnapshots is returned when the input directory holds no card database.
var ErrNoSnapshots = errors.New("no card database snapshots found")

// ExportOptions configures an ExportPipeline.
type ExportOptions struct {
	InputDir string
	// Output is the document path. With several card databases each gets
	// its own file next to it, suffixed with the snapshot's name.
	Output       string
	SkipCleanup  bool
	CoreFallback bool
	Tracer       AnnotationTracer
}

// ExportPipeline turns client snapshots into lookup documents.
type ExportPipeline struct {
	opts     ExportOptions
	exporter *SnapshotExporter
}

func NewExportPipeline(opts ExportOptions) *ExportPipeline {
	if opts.InputDir == "" {
		opts.InputDir = "."
	}
	if opts.Output == "" {
		opts.Output = DefaultOutputName
	}
	return &ExportPipeline{opts: opts, exporter: NewSnapshotExporter()}
}

// FindSnapshots lists files in dir matching pattern, sorted by name.
func FindSnapshots(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// OutputPathFor picks the document path for one card database. A single
// snapshot writes output itself.
func OutputPathFor(output, snapshot string, total int) string {
	if total <= 1 {
		return output
	}
	base := filepath.Base(snapshot)
	suffix := strings.TrimSuffix(strings.TrimPrefix(base, "Raw_CardDatabase_"), filepath.Ext(base))
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_" + suffix + ext
}

// Run exports every card database in the input directory. A failing
// snapshot is logged and skipped; the others still run.
func (p *ExportPipeline) Run(ctx context.Context) ([]*ExportResult, error) {
	snapshots, err := FindSnapshots(p.opts.InputDir, CardDatabasePattern)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		log.Printf("Export: no files matching %s in %s", CardDatabasePattern, p.opts.InputDir)
		return nil, ErrNoSnapshots
	}

	runID := uuid.New().String()
	log.Printf("Export: run %s, %d snapshots in %s", runID, len(snapshots), p.opts.InputDir)

	var results []*ExportResult
	for _, snapshot := range snapshots {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		out := OutputPathFor(p.opts.Output, snapshot, len(snapshots))
		result, err := p.ExportFile(snapshot, out)
		if err != nil {
			metrics.SnapshotFailuresTotal.Inc()
			log.Printf("Export: failed to process %s: %v", snapshot, err)
			continue
		}
		results = append(results, result)
	}

	log.Printf("Export: run %s, %d of %d snapshots processed", runID, len(results), len(snapshots))
	return results, nil
}

// LoadDictionary builds the annotation dictionary from the first client
// localization database found. Without one the dictionary is empty and
// no ability gets a footnote.
func (p *ExportPipeline) LoadDictionary() *AnnotationDictionary {
	empty := BuildAnnotationDictionary(nil)

	files, err := FindSnapshots(p.opts.InputDir, LocalizationPattern)
	if err != nil || len(files) == 0 {
		log.Printf("Export: no localization files found, annotations disabled")
		return empty
	}

	db, err := database.Open(files[0])
	if err != nil {
		log.Printf("Export: %v", err)
		return empty
	}
	defer database.Close(db)

	dict, err := LoadAnnotationDictionary(db)
	if err != nil {
		log.Printf("Export: error reading localization data: %v", err)
		return empty
	}
	return dict
}

// ExportFile processes one card database into the document at out.
func (p *ExportPipeline) ExportFile(snapshot, out string) (*ExportResult, error) {
	start := time.Now()
	log.Printf("Export: processing file %s", snapshot)

	dict := p.LoadDictionary()

	db, err := database.Open(snapshot)
	if err != nil {
		return nil, err
	}
	defer database.Close(db)

	if !p.opts.SkipCleanup {
		if _, err := database.DeleteUnreviewedLocalizations(db); err != nil {
			return nil, fmt.Errorf("failed to delete unreviewed rows: %w", err)
		}
		if _, err := database.NormalizeLocalizations(db, CleanLocalizedText); err != nil {
			return nil, fmt.Errorf("failed to normalize localizations: %w", err)
		}
	}

	cardDB, err := NewCardDatabase(db)
	if err != nil {
		return nil, err
	}
	rows, err := cardDB.Cards()
	if err != nil {
		return nil, err
	}

	resolver := NewAnnotationResolver(dict, ResolverOptions{
		CoreFallback: p.opts.CoreFallback,
		Tracer:       p.opts.Tracer,
	})
	composer := NewAbilityComposer(cardDB, cardDB, resolver)
	builder := NewCardRecordBuilder(cardDB, composer)

	records := builder.Build(rows)
	if err := cardDB.Err(); err != nil {
		return nil, err
	}

	result, err := p.exporter.Write(out, records)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.CardsExportedTotal.Add(float64(len(records)))
	metrics.ExportDuration.Observe(elapsed.Seconds())
	log.Printf("Export: wrote %d records (%d cards read) to %s in %s (checksum %016x)",
		result.Records, len(rows), result.Path, elapsed.Round(time.Millisecond), result.Checksum)
	return result, nil
}
