package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	mdpress "github.com/alnah/mdpress"
	"github.com/alnah/mdpress/internal/config"
	"github.com/alnah/mdpress/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionResult holds the outcome of a single conversion.
type conversionResult struct {
	inputPath  string
	outputPath string
	err        error
	duration   time.Duration
}

// run resolves configuration, converts every input, and reports results.
func run(ctx context.Context, flags *cliFlags, inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w\n\n%s", ErrNoInput, usageLine)
	}

	for _, input := range inputs {
		if err := validateMarkdownExtension(input); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForConfigNotFound())
		}
		return err
	}

	settings, err := resolveSettings(flags, cfg)
	if err != nil {
		return err
	}

	poolSize := mdpress.ResolvePoolSize(settings.workers)
	if poolSize > len(inputs) {
		poolSize = len(inputs)
	}
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}

	opts := []mdpress.Option{mdpress.WithTimeout(settings.timeout)}
	if settings.style != "" {
		opts = append(opts, mdpress.WithStyle(settings.style))
	}

	pool := mdpress.NewConverterPool(poolSize, opts...)
	defer pool.Close()

	results := convertAll(ctx, pool, inputs, flags, settings)

	return report(results, flags.quiet)
}

// settings holds the effective configuration after merging flags over the
// config file. Flags win.
type settings struct {
	marginPixels int
	style        string
	outputDir    string
	timeout      time.Duration
	workers      int
}

// resolveSettings merges flag values over config file values.
func resolveSettings(flags *cliFlags, cfg *config.Config) (*settings, error) {
	s := &settings{
		marginPixels: cfg.Page.MarginPixels,
		style:        cfg.CSS.Style,
		outputDir:    cfg.Output.DefaultDir,
		timeout:      30 * time.Second,
		workers:      cfg.Render.Workers,
	}

	if cfg.Render.Timeout != "" {
		d, err := time.ParseDuration(cfg.Render.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		s.timeout = d
	}

	if flags.margin != marginSentinel {
		s.marginPixels = flags.margin
	}
	if flags.style != "" {
		s.style = flags.style
	}
	if flags.workers != 0 {
		s.workers = flags.workers
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		s.timeout = d
	}

	if s.marginPixels < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", mdpress.ErrInvalidMargin, s.marginPixels)
	}

	return s, nil
}

// loadConfig loads the named config, or defaults when no name is given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(nameOrPath)
}

// convertAll runs conversions across the pool, bounded by pool size.
func convertAll(ctx context.Context, pool *mdpress.ConverterPool, inputs []string, flags *cliFlags, s *settings) []conversionResult {
	results := make([]conversionResult, len(inputs))
	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			results[i] = convertOne(ctx, pool, input, flags, s, len(inputs) > 1)
		}(i, input)
	}

	wg.Wait()
	return results
}

// convertOne converts a single file through a pooled converter.
func convertOne(ctx context.Context, pool *mdpress.ConverterPool, inputPath string, flags *cliFlags, s *settings, batch bool) conversionResult {
	start := time.Now()
	res := conversionResult{inputPath: inputPath}

	outputPath, err := deriveOutputPath(inputPath, flags.output, s.outputDir, flags.htmlOnly, batch)
	if err != nil {
		res.err = err
		return res
	}
	res.outputPath = outputPath

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided input path
	if err != nil {
		res.err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return res
	}

	conv, err := pool.Acquire()
	if err != nil {
		res.err = err
		return res
	}
	defer pool.Release(conv)

	result, err := conv.Convert(ctx, mdpress.Input{
		Markdown: string(content),
		Page:     &mdpress.PageSettings{MarginPixels: s.marginPixels},
		HTMLOnly: flags.htmlOnly,
	})
	if err != nil {
		res.err = decorateError(err)
		return res
	}

	output := result.PDF
	if flags.htmlOnly {
		output = result.HTML
	}

	if err := writeOutput(outputPath, output); err != nil {
		res.err = err
		return res
	}

	res.duration = time.Since(start)
	return res
}

// deriveOutputPath determines where the output goes.
// Default: input path with the extension replaced. An explicit --output is
// a file path for a single input and a directory for a batch; a config
// defaultDir redirects defaults into that directory.
func deriveOutputPath(inputPath, outputFlag, defaultDir string, htmlOnly, batch bool) (string, error) {
	ext := ".pdf"
	if htmlOnly {
		ext = ".html"
	}

	derived := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext

	switch {
	case outputFlag == "":
		if defaultDir != "" {
			return filepath.Join(defaultDir, filepath.Base(derived)), nil
		}
		return derived, nil
	case batch || isDirectory(outputFlag):
		return filepath.Join(outputFlag, filepath.Base(derived)), nil
	default:
		return outputFlag, nil
	}
}

// isDirectory returns true if path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writeOutput writes the result, creating parent directories as needed.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// decorateError appends actionable hints to browser and timeout errors.
func decorateError(err error) error {
	switch {
	case errors.Is(err, mdpress.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, mdpress.ErrRenderTimeout):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	default:
		return err
	}
}

// report prints per-file outcomes and returns the first error, if any.
func report(results []conversionResult, quiet bool) error {
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.inputPath, r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if !quiet {
			fmt.Printf("Created %s (%s)\n", r.outputPath, r.duration.Round(time.Millisecond))
		}
	}
	return firstErr
}
