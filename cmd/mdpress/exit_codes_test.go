package main

import (
	"errors"
	"fmt"
	"testing"

	mdpress "github.com/alnah/mdpress"
	"github.com/alnah/mdpress/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", mdpress.ErrBrowserConnect, ExitBrowser},
		{"page create", mdpress.ErrPageCreate, ExitBrowser},
		{"page load", mdpress.ErrPageLoad, ExitBrowser},
		{"pdf generation", mdpress.ErrPDFGeneration, ExitBrowser},
		{"render timeout", mdpress.ErrRenderTimeout, ExitBrowser},
		{"wrapped browser error", fmt.Errorf("converting: %w", mdpress.ErrBrowserConnect), ExitBrowser},
		{"read failure", ErrReadMarkdown, ExitIO},
		{"write failure", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitUsage},
		{"bad extension", ErrInvalidExtension, ExitUsage},
		{"bad timeout", ErrInvalidTimeout, ExitUsage},
		{"invalid margin", mdpress.ErrInvalidMargin, ExitUsage},
		{"empty markdown", mdpress.ErrEmptyMarkdown, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"unclassified", errors.New("mystery"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
