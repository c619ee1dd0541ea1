package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	mdpress "github.com/alnah/mdpress"
	"github.com/alnah/mdpress/internal/config"
)

func TestValidateMarkdownExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"doc.md", false},
		{"doc.markdown", false},
		{"dir/doc.md", false},
		{"doc.txt", true},
		{"doc.pdf", true},
		{"doc", true},
		{"doc.MD", true},
	}

	for _, tt := range tests {
		err := validateMarkdownExtension(tt.path)
		if tt.wantErr && !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("validateMarkdownExtension(%q) = %v, want ErrInvalidExtension", tt.path, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("validateMarkdownExtension(%q) = %v, want nil", tt.path, err)
		}
	}
}

func TestDeriveOutputPath(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()

	tests := []struct {
		name       string
		input      string
		outputFlag string
		defaultDir string
		htmlOnly   bool
		batch      bool
		want       string
	}{
		{
			name:  "default replaces extension",
			input: "notes.md",
			want:  "notes.pdf",
		},
		{
			name:  "default keeps directory",
			input: "docs/notes.md",
			want:  "docs/notes.pdf",
		},
		{
			name:     "html only extension",
			input:    "notes.md",
			htmlOnly: true,
			want:     "notes.html",
		},
		{
			name:       "explicit file output",
			input:      "notes.md",
			outputFlag: "renamed.pdf",
			want:       "renamed.pdf",
		},
		{
			name:       "batch treats output as directory",
			input:      "docs/notes.md",
			outputFlag: "out",
			batch:      true,
			want:       filepath.Join("out", "notes.pdf"),
		},
		{
			name:       "existing directory output",
			input:      "notes.md",
			outputFlag: outDir,
			want:       filepath.Join(outDir, "notes.pdf"),
		},
		{
			name:       "config default dir",
			input:      "docs/notes.md",
			defaultDir: "exports",
			want:       filepath.Join("exports", "notes.pdf"),
		},
		{
			name:       "output flag beats default dir",
			input:      "notes.md",
			outputFlag: "explicit.pdf",
			defaultDir: "exports",
			want:       "explicit.pdf",
		},
		{
			name:  "markdown long extension",
			input: "notes.markdown",
			want:  "notes.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := deriveOutputPath(tt.input, tt.outputFlag, tt.defaultDir, tt.htmlOnly, tt.batch)
			if err != nil {
				t.Fatalf("deriveOutputPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("deriveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSettings(t *testing.T) {
	t.Parallel()

	base := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.Page.MarginPixels = 60
		cfg.CSS.Style = "paper"
		cfg.Render.Timeout = "45s"
		cfg.Render.Workers = 2
		return cfg
	}

	t.Run("config values flow through", func(t *testing.T) {
		t.Parallel()

		s, err := resolveSettings(&cliFlags{margin: marginSentinel}, base())
		if err != nil {
			t.Fatalf("resolveSettings() error = %v", err)
		}
		if s.marginPixels != 60 || s.style != "paper" || s.timeout != 45*time.Second || s.workers != 2 {
			t.Errorf("settings = %+v", s)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		flags := &cliFlags{margin: 10, style: "dark", timeout: "5s", workers: 4}
		s, err := resolveSettings(flags, base())
		if err != nil {
			t.Fatalf("resolveSettings() error = %v", err)
		}
		if s.marginPixels != 10 || s.style != "dark" || s.timeout != 5*time.Second || s.workers != 4 {
			t.Errorf("settings = %+v", s)
		}
	})

	t.Run("explicit zero margin overrides config", func(t *testing.T) {
		t.Parallel()

		s, err := resolveSettings(&cliFlags{margin: 0}, base())
		if err != nil {
			t.Fatalf("resolveSettings() error = %v", err)
		}
		if s.marginPixels != 0 {
			t.Errorf("margin = %d, want 0", s.marginPixels)
		}
	})

	t.Run("default margin when nothing set", func(t *testing.T) {
		t.Parallel()

		s, err := resolveSettings(&cliFlags{margin: marginSentinel}, config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveSettings() error = %v", err)
		}
		if s.marginPixels != config.DefaultMarginPixels {
			t.Errorf("margin = %d, want %d", s.marginPixels, config.DefaultMarginPixels)
		}
	})

	t.Run("bad flag timeout", func(t *testing.T) {
		t.Parallel()

		_, err := resolveSettings(&cliFlags{margin: marginSentinel, timeout: "never"}, config.DefaultConfig())
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("resolveSettings() = %v, want ErrInvalidTimeout", err)
		}
	})

	t.Run("negative flag margin", func(t *testing.T) {
		t.Parallel()

		_, err := resolveSettings(&cliFlags{margin: -5}, config.DefaultConfig())
		if !errors.Is(err, mdpress.ErrInvalidMargin) {
			t.Errorf("resolveSettings() = %v, want ErrInvalidMargin", err)
		}
	})
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "out.pdf")
		if err := writeOutput(path, []byte("data")); err != nil {
			t.Fatalf("writeOutput() error = %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "data" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("unwritable destination", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		// The parent "directory" is a regular file, so MkdirAll fails.
		err := writeOutput(filepath.Join(blocker, "out.pdf"), []byte("data"))
		if !errors.Is(err, ErrWriteOutput) {
			t.Errorf("writeOutput() = %v, want ErrWriteOutput", err)
		}
	})
}

func TestDecorateError(t *testing.T) {
	t.Parallel()

	t.Run("browser error keeps identity", func(t *testing.T) {
		t.Parallel()

		err := decorateError(mdpress.ErrBrowserConnect)
		if !errors.Is(err, mdpress.ErrBrowserConnect) {
			t.Errorf("decorated error lost identity: %v", err)
		}
	})

	t.Run("timeout error gains hint", func(t *testing.T) {
		t.Parallel()

		err := decorateError(mdpress.ErrRenderTimeout)
		if !errors.Is(err, mdpress.ErrRenderTimeout) {
			t.Errorf("decorated error lost identity: %v", err)
		}
		if err.Error() == mdpress.ErrRenderTimeout.Error() {
			t.Error("timeout error should carry a hint")
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("plain")
		if got := decorateError(sentinel); got != sentinel {
			t.Errorf("decorateError() = %v, want the original error", got)
		}
	})
}

func TestRun_HTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(input, []byte("# Hello\n\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := &cliFlags{margin: marginSentinel, htmlOnly: true, quiet: true}
	if err := run(t.Context(), flags, []string{input}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := filepath.Join(dir, "doc.html")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 {
		t.Error("output HTML is empty")
	}
}

func TestRun_InputErrors(t *testing.T) {
	t.Parallel()

	t.Run("no inputs", func(t *testing.T) {
		t.Parallel()

		err := run(t.Context(), &cliFlags{margin: marginSentinel}, nil)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("run() = %v, want ErrNoInput", err)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		err := run(t.Context(), &cliFlags{margin: marginSentinel}, []string{"doc.txt"})
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("run() = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "nope.md")
		flags := &cliFlags{margin: marginSentinel, htmlOnly: true, quiet: true}
		err := run(t.Context(), flags, []string{missing})
		if !errors.Is(err, ErrReadMarkdown) {
			t.Errorf("run() = %v, want ErrReadMarkdown", err)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()

		flags := &cliFlags{margin: marginSentinel, config: "no-such-config-name"}
		err := run(t.Context(), flags, []string{"doc.md"})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("run() = %v, want ErrConfigNotFound", err)
		}
	})
}
