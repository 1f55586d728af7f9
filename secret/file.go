package secret

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileProviderName is the provider name of FileProvider.
const FileProviderName = "file"

// FileProvider resolves references by file path, the way container
// orchestrators mount secrets:
//
//	secretref:file:/run/secrets/jwt_secret
//
// Trailing newlines are trimmed. Relative paths are joined to Dir.
type FileProvider struct {
	Dir string
}

// NewFileProvider returns a provider resolving relative paths against dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// Name returns "file".
func (p *FileProvider) Name() string { return FileProviderName }

// Resolve reads the file named by ref.
func (p *FileProvider) Resolve(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := strings.TrimSpace(ref)
	if !filepath.IsAbs(path) && p.Dir != "" {
		path = filepath.Join(p.Dir, path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: file %q", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("secret: read %q: %w", path, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Close is a no-op.
func (p *FileProvider) Close() error { return nil }
