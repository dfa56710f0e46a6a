package main

import (
	"fmt"
	"log"

	"github.com/codyseavey/mtga-ko/internal/services"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	opts := services.ExportOptions{
		InputDir:     c.InputDir,
		Output:       c.Output,
		SkipCleanup:  c.NoCleanup,
		CoreFallback: c.CoreFallback,
	}

	if c.TraceFile != "" {
		tracer, err := services.NewZapAnnotationTracer(c.TraceFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := tracer.Close(); err != nil {
				log.Printf("Export: %v", err)
			}
		}()
		opts.Tracer = tracer
	}

	results, err := services.NewExportPipeline(opts).Run(deps.Ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %d records  %016x\n", r.Path, r.Records, r.Checksum)
	}
	fmt.Fprintln(deps.Stdout, "All files processed.")
	return nil
}
