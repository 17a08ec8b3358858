package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL prefix the local directory is served under.
const PublicPrefix = "/uploads"

// Local writes files into a directory on disk.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Dir() string { return l.dir }

func (l *Local) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (Object, error) {
	name := filepath.Base(filepath.Clean("/" + key))
	if name == "/" || name == "." || strings.HasPrefix(name, "..") {
		return Object{}, fmt.Errorf("invalid blob key %q", key)
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	dst := filepath.Join(l.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return Object{}, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return Object{}, fmt.Errorf("close %s: %w", name, err)
	}

	return Object{
		Key:  name,
		Path: filepath.ToSlash(dst),
		URL:  path.Join(PublicPrefix, name),
	}, nil
}
