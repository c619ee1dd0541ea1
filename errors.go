package mdpress

import (
	"errors"

	"github.com/alnah/mdpress/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrInvalidMargin = errors.New("invalid margin")

	// Browser acquisition failed: the rendering engine is missing or cannot
	// start. Fatal and never retried; the environment must be fixed.
	ErrBrowserConnect = errors.New("failed to connect to browser")

	// Renderer failures mid-pipeline. Not retried automatically: the causes
	// are typically deterministic.
	ErrPageCreate    = errors.New("failed to create browser page")
	ErrPageLoad      = errors.New("failed to load page")
	ErrPDFGeneration = errors.New("PDF generation failed")

	// ErrRenderTimeout distinguishes a deadline expiry from an explicit
	// renderer failure. Browser release still runs before it surfaces.
	ErrRenderTimeout = errors.New("PDF rendering timed out")
)

// ErrMalformedStructure indicates unbalanced block nesting in the Markdown
// event stream. Re-exported so callers can classify it with errors.Is
// without importing internal packages.
var ErrMalformedStructure = pipeline.ErrMalformedStructure
