package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// marginSentinel detects if --margin was explicitly set.
// Since 0 is a valid margin, we use an out-of-range sentinel.
const marginSentinel = -1

// cliFlags holds all flags for the mdpress command.
type cliFlags struct {
	output   string
	margin   int
	style    string
	timeout  string
	workers  int
	config   string
	htmlOnly bool
	quiet    bool
	verbose  bool
	version  bool
}

// parseFlags parses command line flags and returns the positional
// arguments (input Markdown files).
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdpress", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: input with .pdf extension)")
	fs.IntVarP(&f.margin, "margin", "m", marginSentinel, "page margin in pixels (default 50)")
	fs.StringVarP(&f.style, "style", "s", "", "style name, CSS file path, or inline CSS")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for batch conversion (0 = auto)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
