// Package cache persists the last scan's report and per-file content
// fingerprints so the CLI can re-render or judge staleness without
// rescanning. The cache never feeds back into scoring; a scan always
// rebuilds its report from scratch.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/agentlock/agentlock/internal/types"
)

// DB is the on-disk cache shape for one scan root.
type DB struct {
	Report types.Report `json:"report"`
	// Hashes maps root-relative paths to content hashes.
	Hashes    map[string]string `json:"hashes"`
	Timestamp time.Time         `json:"timestamp"`
}

// FileName is the cache file written at the scan root when the root has no
// .git directory. The walker skips it by name so the cache never counts as
// project content.
const FileName = ".agentlock_last_scan.json"

func cachePath(root string) string {
	// Prefer .git so the cache never gets committed; fall back to the root.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "agentlock_last_scan.json")
	}
	return filepath.Join(root, FileName)
}

// Load reads the cached scan for root.
func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(cachePath(root))
	if err != nil {
		return db, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return db, err
	}
	if db.Hashes == nil {
		db.Hashes = map[string]string{}
	}
	return db, nil
}

// Save writes the cached scan for root.
func Save(root string, db DB) error {
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath(root), b, 0o644)
}

// Stale counts cached files whose content no longer matches its recorded
// hash, including files that have disappeared. A nonzero result means the
// cached report no longer reflects the tree.
func Stale(root string, db DB) int {
	changed := 0
	for rel, h := range db.Hashes {
		b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || Hash(b) != h {
			changed++
		}
	}
	return changed
}

// Hash fingerprints file content for the cache.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
