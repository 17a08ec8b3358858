// Package blob stores uploaded files under generated names and hands back
// where they ended up.
package blob

import (
	"context"
	"io"
)

// Object describes a stored file. Path is what gets persisted on records;
// URL is what clients use to fetch it.
type Object struct {
	Key  string `json:"key"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
}
