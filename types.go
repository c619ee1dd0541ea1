package mdpress

import (
	"fmt"
	"time"

	"github.com/alnah/mdpress/internal/assets"
)

// DefaultMarginPixels is the uniform page margin applied when none is set.
const DefaultMarginPixels = 50

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// PageSettings configures PDF page layout.
type PageSettings struct {
	MarginPixels int // uniform margin applied to all four page edges
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{MarginPixels: DefaultMarginPixels}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.MarginPixels < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidMargin, p.MarginPixels)
	}
	return nil
}

// margin resolves the effective margin, tolerating a nil receiver.
func (p *PageSettings) margin() int {
	if p == nil {
		return DefaultMarginPixels
	}
	return p.MarginPixels
}

// Input contains conversion parameters.
type Input struct {
	Markdown string        // Markdown content (required)
	CSS      string        // Extra CSS appended after the base style (optional)
	Page     *PageSettings // Page settings (optional, nil = defaults)
	HTMLOnly bool          // Skip PDF generation (for debugging)
}

// ConvertResult holds the outputs of a conversion: the assembled HTML
// document and, unless HTMLOnly was set, the PDF bytes.
type ConvertResult struct {
	HTML []byte
	PDF  []byte
}

// AssetLoader loads named stylesheets. Implement it to source styles from
// somewhere other than the built-in assets.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string
	resolvedStyle string
	assetPath     string
}

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the document style. Accepts a built-in style name, a
// CSS file path, or inline CSS content.
func WithStyle(nameOrPathOrCSS string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPathOrCSS
	}
}

// WithAssetPath loads styles from a directory instead of the embedded
// assets, falling back to the built-ins for missing names.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader replaces the style source entirely.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = l
	}
}

// publicToInternalAdapter wraps a public AssetLoader to the internal one.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

// Compile-time interface check.
var _ assets.AssetLoader = (*publicToInternalAdapter)(nil)
