// Package mdpress converts Markdown documents to styled, paginated PDFs
// using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdpress.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdpress.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains both the PDF bytes (result.PDF) and the assembled
// HTML (result.HTML) for debugging. Use Input.HTMLOnly to skip PDF
// generation.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization)
//  2. Tokenizing into a structural event stream via Goldmark (GFM)
//  3. Event-to-HTML transformation with chroma syntax highlighting
//  4. Document assembly (inline CSS parameterized by the page margin)
//  5. PDF rendering via headless Chrome (go-rod)
//
// Fenced code blocks are highlighted with a fixed dark theme; unknown
// languages render as plain text rather than failing.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdpress.NewConverter(
//	    mdpress.WithTimeout(2 * time.Minute),
//	    mdpress.WithStyle("paper"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, mdpress.Input{
//	    Markdown: content,
//	    CSS:      "body { font-size: 14px; }",
//	    Page:     &mdpress.PageSettings{MarginPixels: 75},
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to bound concurrent browser
// instances:
//
//	pool := mdpress.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package mdpress
