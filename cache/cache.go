package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/gofrs/flock"
)

// EnvDir overrides the default cache location.
const EnvDir = "LOXCACHE"

const (
	entriesDir = "parse"
	lockFile   = ".lock"
	hashFile   = ".hash"
	outputFile = "output"
)

// DefaultDir returns $LOXCACHE if set, else the OS cache directory for lox.
func DefaultDir() string {
	if env := os.Getenv(EnvDir); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "lox")
		}
		return filepath.Join(homeDir, "AppData", "Local", "lox")

	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", "lox")

	default: // Linux and others
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "lox")
		}
		return filepath.Join(homeDir, ".cache", "lox")
	}
}

// Key identifies a cache entry. Short names the entry directory, Full is
// stored alongside the output to detect collisions.
type Key struct {
	Short string
	Full  string
}

// NewKey hashes parts in order. Each part is length-prefixed so that
// ("ab", "c") and ("a", "bc") differ.
func NewKey(parts ...[]byte) Key {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write(p)
	}
	full := hex.EncodeToString(h.Sum(nil))
	return Key{Short: full[:8], Full: full}
}

// isHashDir returns true if name is an 8-char hex string (matches Key.Short).
func isHashDir(name string) bool {
	if len(name) != 8 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// Cache stores rendered parse output on disk. A file lock lets concurrent
// processes share the directory; readers see either a complete entry or
// none.
type Cache struct {
	dir    string
	keep   int
	minAge time.Duration
	log    *slog.Logger
}

type Option func(*Cache)

// Keep sets how many of the most recent entries pruning never removes.
func Keep(n int) Option {
	return func(c *Cache) { c.keep = n }
}

// MinAge sets how old an entry must be before pruning may remove it.
func MinAge(d time.Duration) Option {
	return func(c *Cache) { c.minAge = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.log = l }
}

func New(dir string, opts ...Option) *Cache {
	c := &Cache{
		dir:    dir,
		keep:   64,
		minAge: 7 * 24 * time.Hour,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) entriesDir() string {
	return filepath.Join(c.dir, entriesDir)
}

func (c *Cache) lock() (*flock.Flock, error) {
	root := c.entriesDir()
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return flock.New(filepath.Join(root, lockFile)), nil
}

// Get returns the stored output for k. A missing entry or one whose full
// hash does not match is a miss, not an error.
func (c *Cache) Get(k Key) ([]byte, bool, error) {
	fl, err := c.lock()
	if err != nil {
		return nil, false, err
	}
	if err := fl.RLock(); err != nil {
		return nil, false, fmt.Errorf("acquire cache lock: %w", err)
	}
	defer fl.Unlock()

	entry := filepath.Join(c.entriesDir(), k.Short)
	storedHash, err := os.ReadFile(filepath.Join(entry, hashFile))
	if errors.Is(err, os.ErrNotExist) {
		c.log.Debug("cache miss", "key", k.Short)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	if !bytes.Equal(storedHash, []byte(k.Full)) {
		c.log.Debug("cache hash mismatch", "key", k.Short)
		return nil, false, nil
	}

	data, err := os.ReadFile(filepath.Join(entry, outputFile))
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	c.log.Debug("cache hit", "key", k.Short, "dir", entry)
	return data, true, nil
}

// Put stores data under k, replacing any entry with the same short hash,
// then prunes old entries.
func (c *Cache) Put(k Key, data []byte) error {
	fl, err := c.lock()
	if err != nil {
		return err
	}
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer fl.Unlock()

	entry := filepath.Join(c.entriesDir(), k.Short)
	// Hash collision or stale entry: start over
	if err := os.RemoveAll(entry); err != nil {
		return fmt.Errorf("reset cache entry: %w", err)
	}
	if err := os.MkdirAll(entry, 0755); err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(entry, outputFile), data, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	// Written last: marks the entry complete
	if err := os.WriteFile(filepath.Join(entry, hashFile), []byte(k.Full), 0644); err != nil {
		return fmt.Errorf("write hash file: %w", err)
	}
	c.log.Debug("cache store", "key", k.Short, "bytes", len(data))

	c.prune()
	return nil
}

// Prune removes old entries. It keeps at least the configured number of
// most recent entries and never removes one younger than the minimum age.
func (c *Cache) Prune() error {
	fl, err := c.lock()
	if err != nil {
		return err
	}
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer fl.Unlock()

	c.prune()
	return nil
}

// prune must be called with the write lock held.
func (c *Cache) prune() {
	root := c.entriesDir()
	entries, err := os.ReadDir(root)
	if err != nil || len(entries) <= c.keep {
		return
	}

	type dirInfo struct {
		name  string
		mtime time.Time
	}
	var dirs []dirInfo
	for _, e := range entries {
		if e.IsDir() && isHashDir(e.Name()) {
			if info, err := e.Info(); err == nil {
				dirs = append(dirs, dirInfo{e.Name(), info.ModTime()})
			}
		}
	}

	if len(dirs) <= c.keep {
		return
	}

	// oldest first
	cutoff := time.Now().Add(-c.minAge)
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mtime.Before(dirs[j].mtime) })
	for i := 0; i < len(dirs)-c.keep; i++ {
		if dirs[i].mtime.Before(cutoff) {
			path := filepath.Join(root, dirs[i].name)
			if err := os.RemoveAll(path); err != nil {
				c.log.Warn("failed to remove old cache entry", "path", path, "err", err)
				continue
			}
			c.log.Debug("pruned cache entry", "path", path)
		}
	}
}
