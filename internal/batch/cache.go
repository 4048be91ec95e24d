package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchemaVersion is bumped whenever the cached payload layout changes.
const cacheSchemaVersion uint16 = 1

// Digest is the SHA-256 of a file's content.
type Digest [sha256.Size]byte

// DigestOf hashes content.
func DigestOf(content []byte) Digest { return sha256.Sum256(content) }

// String returns the hex form of d.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// cachePayload is the on-disk form of one file's results.
type cachePayload struct {
	Schema uint16       `msgpack:"schema"`
	Lines  []LineRecord `msgpack:"lines"`
}

// DiskCache stores evaluated lines keyed by content digest. It is safe for concurrent use.
// A nil *DiskCache is valid and never hits.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultCacheDir returns $XDG_CACHE_HOME/bigcalc, falling back to ~/.cache/bigcalc.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "bigcalc"), nil
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put stores lines under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key Digest, lines []LineRecord) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	if err := msgpack.NewEncoder(f).Encode(&cachePayload{Schema: cacheSchemaVersion, Lines: lines}); err != nil {
		f.Close() //nolint:errcheck,gosec
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get loads the lines stored under key. Entries written with another schema
// version count as misses.
func (c *DiskCache) Get(key Digest) ([]LineRecord, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close() //nolint:errcheck

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return payload.Lines, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}
