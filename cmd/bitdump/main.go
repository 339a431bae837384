package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/wippyai/bitcodec/bitstream"
	"github.com/wippyai/bitcodec/codec"
	"github.com/wippyai/bitcodec/fieldtree"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to the binary file to decode")
		formatName  = flag.String("format", "", "Format description to decode with")
		list        = flag.Bool("list", false, "List built-in formats and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *list {
		listFormats()
		return
	}

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitdump -in <file> -format <name>")
		fmt.Fprintln(os.Stderr, "       bitdump -in <file> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       bitdump -list")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *formatName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listFormats() {
	for _, f := range formats {
		fmt.Printf("%-8s %s\n", f.Name, f.Description)
	}
}

func run(inFile, formatName string) error {
	if formatName == "" {
		return fmt.Errorf("missing -format (use -list to see the built-ins)")
	}
	format, err := lookupFormat(formatName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	ctx, err := decodeFile(format, data)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s (%d bytes)\n", inFile, len(data))
	fmt.Printf("Format: %s\n\n", format.Name)
	fmt.Printf("%-10s %-6s %-28s %s\n", "BIT", "WIDTH", "PATH", "VALUE")
	for _, m := range ctx.Mappings() {
		fmt.Printf("%-10d %-6d %-28s %v\n", m.Position, m.Raw.Len(), m.Path, m.Converted)
	}
	fmt.Printf("\nConsumed %d of %d bits\n", ctx.Position(), int64(len(data))*8)
	return nil
}

// decodeFile runs the format's description against data in one transaction
// and returns the finished context for inspection.
func decodeFile(format Format, data []byte) (*codec.DecodingContext, error) {
	ctx := codec.NewDecodingContext(bitstream.NewReader(data), fieldtree.New())
	tx, err := ctx.BeginTransaction()
	if err != nil {
		return nil, err
	}
	if err := format.Root().Process(ctx); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ctx, nil
}
