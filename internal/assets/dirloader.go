package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirLoader loads styles from a directory on disk, falling back to the
// embedded assets when a name is missing. Used for user-provided asset
// directories.
type DirLoader struct {
	base     string
	fallback *EmbeddedLoader
}

// NewDirLoader creates a DirLoader rooted at base.
// Returns an error if base does not exist or is not a directory.
func NewDirLoader(base string) (*DirLoader, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("asset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset directory: %s is not a directory", base)
	}

	return &DirLoader{base: base, fallback: NewEmbeddedLoader()}, nil
}

// LoadStyle loads <base>/styles/<name>.css, or the embedded style of the
// same name when the file is absent.
func (d *DirLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(d.base, "styles", name+".css")
	content, err := os.ReadFile(path) // #nosec G304 -- name is validated, base is user-chosen
	if err == nil {
		return string(content), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading style %q: %w", name, err)
	}

	return d.fallback.LoadStyle(name)
}

// Compile-time interface check.
var _ AssetLoader = (*DirLoader)(nil)
