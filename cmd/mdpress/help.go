package main

import (
	"fmt"
	"io"
)

const usageLine = "Usage: mdpress [flags] <file.md> [file2.md ...]"

// printUsage writes the full help text.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, `mdpress converts Markdown files to styled PDF documents.

%s

Flags:
  -o, --output string    output file (single input) or directory (batch)
  -m, --margin int       page margin in pixels (default 50)
  -s, --style string     style name, CSS file path, or inline CSS
  -t, --timeout string   render timeout per file, e.g. 30s, 2m (default 30s)
  -w, --workers int      parallel conversions (default: auto)
  -c, --config string    config file name or path
      --html-only        emit the intermediate HTML instead of a PDF
  -q, --quiet            suppress success messages
  -v, --verbose          print progress details
      --version          print version and exit
  -h, --help             print this help

Examples:
  mdpress README.md
  mdpress --margin 75 --style paper notes.md
  mdpress -o out/ docs/*.md
  mdpress --html-only report.md

Configuration is read from <name>.yaml in the working directory or
~/.config/mdpress/ when --config is given. Flags override config values.

A Chromium-based browser must be installed. Set ROD_BROWSER_BIN to point
at a specific binary.
`, usageLine)
}
