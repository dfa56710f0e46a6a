package main

import (
	"context"
	"io"
)

// Dependencies holds what commands need at run time.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Export      ExportCmd      `cmd:"" default:"withargs" help:"Export card databases to the lookup document"`
	Annotations AnnotationsCmd `cmd:"" help:"Dump the keyword annotation dictionary as YAML"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	InputDir     string `short:"i" default:"." env:"MTGA_INPUT_DIR" help:"Directory holding the client .mtga snapshots"`
	Output       string `short:"o" default:"cards_data_for_api.json" env:"MTGA_OUTPUT" help:"Output document path"`
	TraceFile    string `env:"MTGA_TRACE_FILE" help:"Append one JSON line per annotation decision to this file"`
	CoreFallback bool   `help:"Also match keyword core names when no title matches"`
	NoCleanup    bool   `help:"Skip deleting and normalizing Korean rows in the card database"`
}

// AnnotationsCmd is the "annotations" subcommand.
type AnnotationsCmd struct {
	InputDir string `short:"i" default:"." env:"MTGA_INPUT_DIR" help:"Directory holding the client .mtga snapshots"`
	Out      string `default:"-" help:"Output file, - for stdout"`
}
