package bhl

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// diskCache stores raw API payloads on disk, keyed by a hash of the
// request. BHL metadata is effectively immutable, so entries never
// expire.
type diskCache struct {
	dir string
}

func newDiskCache(dir string) *diskCache {
	if dir == "" {
		return nil
	}
	return &diskCache{dir: dir}
}

func cacheKey(request string) string {
	sum := sha256.Sum256([]byte(request))
	return hex.EncodeToString(sum[:])
}

func (c *diskCache) path(key string) string {
	// two-level fanout keeps directory listings manageable
	return filepath.Join(c.dir, key[:2], key+".msgpack")
}

// get loads a cached payload into v. The bool reports a hit.
func (c *diskCache) get(request string, v any) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := os.ReadFile(c.path(cacheKey(request)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		// a corrupt entry is treated as a miss and rewritten
		return false, nil
	}
	return true, nil
}

// put stores a payload for the request.
func (c *diskCache) put(request string, v any) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	p := c.path(cacheKey(request))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}
