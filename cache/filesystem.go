package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fileEntry is the on-disk representation of a cached value.
type fileEntry struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at,omitempty"` // unix nanoseconds, 0 never expires
}

// FilesystemPool stores one file per key under a namespace directory of a
// go-billy filesystem. File names are the SHA-256 of the key, so any key is
// safe to use. Writes go through a temporary file and a rename, so readers in
// other processes never observe a partial entry.
type FilesystemPool struct {
	fs        billy.Filesystem
	namespace string
	now       func() time.Time
}

// NewFilesystemPool creates a pool rooted at namespace inside fs.
func NewFilesystemPool(fs billy.Filesystem, namespace string) (*FilesystemPool, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &FilesystemPool{
		fs:        fs,
		namespace: namespace,
		now:       time.Now,
	}, nil
}

// NewOSFilesystemPool creates a pool in dir on the local disk.
func NewOSFilesystemPool(dir, namespace string) (*FilesystemPool, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}
	return NewFilesystemPool(osfs.New(dir), namespace)
}

func (p *FilesystemPool) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return p.fs.Join(p.namespace, hex.EncodeToString(sum[:]))
}

// Get implements Pool. Expired or unreadable entries are removed and reported
// as misses.
func (p *FilesystemPool) Get(_ context.Context, key string) (string, bool, error) {
	name := p.path(key)

	f, err := p.fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache: open %q: %w", name, err)
	}
	data, err := io.ReadAll(f)
	closeErr := f.Close()
	if err != nil {
		return "", false, fmt.Errorf("cache: read %q: %w", name, err)
	}
	if closeErr != nil {
		return "", false, fmt.Errorf("cache: close %q: %w", name, closeErr)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		_ = p.fs.Remove(name)
		return "", false, nil
	}
	if entry.ExpiresAt != 0 && !p.now().Before(time.Unix(0, entry.ExpiresAt)) {
		_ = p.fs.Remove(name)
		return "", false, nil
	}

	return entry.Value, true, nil
}

// Set implements Pool.
func (p *FilesystemPool) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := fileEntry{Key: key, Value: value}
	if ttl > 0 {
		entry.ExpiresAt = p.now().Add(ttl).UnixNano()
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("cache: encode entry: %w", err)
	}

	if err := p.fs.MkdirAll(p.namespace, 0o700); err != nil {
		return fmt.Errorf("cache: mkdir %q: %w", p.namespace, err)
	}

	tmp, err := util.TempFile(p.fs, p.namespace, ".tmp-")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("cache: write %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("cache: close %q: %w", tmpName, err)
	}

	name := p.path(key)
	if err := p.fs.Rename(tmpName, name); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("cache: rename %q: %w", name, err)
	}

	return nil
}

// Has implements Pool.
func (p *FilesystemPool) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := p.Get(ctx, key)
	return ok, err
}

// Delete implements Pool.
func (p *FilesystemPool) Delete(_ context.Context, key string) error {
	name := p.path(key)
	if err := p.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache: remove %q: %w", name, err)
	}
	return nil
}

// Clear implements Pool. Only the namespace directory is removed.
func (p *FilesystemPool) Clear(_ context.Context) error {
	if err := util.RemoveAll(p.fs, p.namespace); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache: clear %q: %w", p.namespace, err)
	}
	return nil
}
