package mdpress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/mdpress/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	MarginPixels int
}

// pixelsPerInch converts CSS pixels to the inches Chrome's print API wants.
const pixelsPerInch = 96.0

// renderBackend is the renderer capability contract. A render proceeds
// acquire -> load -> print, and release always runs afterwards, on success
// and on every failure path.
type renderBackend interface {
	// acquire starts the browser. Failure means the rendering engine is
	// unavailable in this environment.
	acquire(ctx context.Context) error

	// load opens url and waits for the browser's explicit load signal.
	// Printing before that signal produces partial or blank pages, so a
	// fixed delay is never an acceptable substitute.
	load(ctx context.Context, url string, timeout time.Duration) error

	// print requests a PDF with a uniform margin on all sides.
	print(ctx context.Context, marginPixels int) ([]byte, error)

	// release terminates the browser. Safe to call at any point after
	// creation, including before or during a failed acquire.
	release()
}

// rodBackend implements renderBackend using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodBackend struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func (b *rodBackend) acquire(ctx context.Context) error {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.browser = browser

	return ctx.Err()
}

func (b *rodBackend) load(ctx context.Context, url string, timeout time.Duration) error {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	b.page = page

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return ctx.Err()
}

func (b *rodBackend) print(ctx context.Context, marginPixels int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	margin := float64(marginPixels) / pixelsPerInch
	reader, err := b.page.PDF(&proto.PagePrintToPDF{
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// release is idempotent; fields are nilled as they are torn down so a
// partial acquire releases only what it acquired.
func (b *rodBackend) release() {
	if b.page != nil {
		_ = b.page.Close()
		b.page = nil
	}
	if b.browser != nil {
		_ = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
		b.launcher = nil
	}
}

// Compile-time interface checks
var (
	_ renderBackend = (*rodBackend)(nil)
)

// rodRenderer renders local HTML files to PDF, acquiring a fresh browser
// for every render. Each invocation owns its browser exclusively from
// launch to release; nothing is cached across renders, so a failed print
// can never leak a browser process into the next one.
type rodRenderer struct {
	timeout time.Duration

	// newBackend is swapped by tests to avoid launching a real browser.
	newBackend func() renderBackend
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{
		timeout:    timeout,
		newBackend: func() renderBackend { return &rodBackend{} },
	}
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it
// to PDF. The overall deadline bounds launch through print; the release
// step runs regardless of where a failure occurs.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, asTimeout(err)
	}

	backend := r.newBackend()
	defer backend.release()

	if err := backend.acquire(ctx); err != nil {
		return nil, asTimeout(err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, fmt.Errorf("%w: %v", ErrRenderTimeout, context.DeadlineExceeded)
		}
	}

	if err := backend.load(ctx, "file://"+filePath, timeout); err != nil {
		return nil, asTimeout(err)
	}

	pdfBuf, err := backend.print(ctx, opts.MarginPixels)
	if err != nil {
		return nil, asTimeout(err)
	}

	return pdfBuf, nil
}

// asTimeout maps deadline expiry onto the timeout sentinel so callers can
// distinguish a hang from an explicit renderer failure.
func asTimeout(err error) error {
	if errors.Is(err, ErrRenderTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	return err
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with the production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout),
	}
}

// ToPDF converts HTML content to PDF bytes using headless Chrome.
// The content goes through a temp file so the browser loads it with a
// file:// origin and no network access.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases converter resources. The browser lifecycle is scoped to
// each render, so there is nothing persistent to tear down.
func (c *rodConverter) Close() error {
	return nil
}
