// export converts MTG Arena client snapshots into the Korean card document
// served by the lookup server.
//
// Usage: export [export] [-i <dir>] [-o <file>] [--trace-file <file>]
//
//	export annotations [-i <dir>] [--out <file>]
//
// The export command:
// 1. Builds the keyword annotation dictionary from Raw_ClientLocalization_*.mtga
// 2. Deletes unreviewed Korean rows and normalizes the rest in place
// 3. Renders every card of each Raw_CardDatabase_*.mtga with plain and
// annotated ability text
// 4. Writes the JSON document plus the ping record
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Run parses args and executes the selected command.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("export"),
		kong.Description("Export MTG Arena card text in Korean with keyword annotations."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kongCtx.Run()
}
