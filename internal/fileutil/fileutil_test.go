package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("creates file with content and extension", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q missing .html suffix", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("content = %q, want %q", data, "<html></html>")
		}
	})

	t.Run("cleanup removes the file", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("x", "txt")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		cleanup()
		if FileExists(path) {
			t.Errorf("file %q still exists after cleanup", path)
		}
	})

	t.Run("rejects bad extensions", func(t *testing.T) {
		t.Parallel()

		if _, _, err := WriteTempFile("x", ""); !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("empty extension: got %v, want ErrExtensionEmpty", err)
		}
		if _, _, err := WriteTempFile("x", "a/b"); !errors.Is(err, ErrExtensionPathTraversal) {
			t.Errorf("separator in extension: got %v, want ErrExtensionPathTraversal", err)
		}
	})
}

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		extension string
		wantErr   error
	}{
		{"html", nil},
		{"pdf", nil},
		{"", ErrExtensionEmpty},
		{"a/b", ErrExtensionPathTraversal},
		{`a\b`, ErrExtensionPathTraversal},
		{"a\x00b", ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		if err := ValidateExtension(tt.extension); !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
		}
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists() = true for missing file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for a directory")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"style.css", false},
		{"paper", false},
		{"./style.css", true},
		{"/abs/path.css", true},
		{`C:\docs\style.css`, true},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"body { margin: 0; }", true},
		{"paper", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsCSS(tt.in); got != tt.want {
			t.Errorf("IsCSS(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
