package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/agentlock/agentlock/internal/cache"
)

// scanState carries the mutable state of one scan. A scan is sequential:
// traversal order is fixed (depth-first, subdirectories before files, both
// in lexical order), so two scans of an unmodified tree produce identical
// reports.
type scanState struct {
	cfg         Config
	ignoreDirs  map[string]bool
	ignoreFiles map[string]bool
	collector   *collector
	scanned     int  // files whose content reached the matcher
	matched     int  // files counted toward MaxFiles
	limitHit    bool // a file was skipped because MaxFiles was reached
	hashes      map[string]string
}

// walkDir recurses into abs. rel is the slash-normalized path of abs below
// the root ("" for the root itself). Any error on a single entry skips that
// entry and never aborts the scan.
func (s *scanState) walkDir(abs, rel string) {
	if s.limitHit {
		return
	}
	base := filepath.Base(abs)
	if base == "skills" {
		s.auditSkills(abs, rel)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return
	}
	// ReadDir sorts by name; take subdirectories first, then files.
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if s.ignoreDirs[e.Name()] {
			continue
		}
		s.walkDir(filepath.Join(abs, e.Name()), joinRel(rel, e.Name()))
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if s.ignoreFiles[e.Name()] {
			continue
		}
		// Never scan our own cache file: a rescan must see the same tree
		// the first scan saw, ignore-list overrides included.
		if e.Name() == cache.FileName {
			continue
		}
		s.scanFile(filepath.Join(abs, e.Name()), joinRel(rel, e.Name()), e)
	}
}

// scanFile stats, reads, and matches one regular file. Oversized files and
// all I/O failures are skipped silently.
func (s *scanState) scanFile(abs, rel string, entry fs.DirEntry) {
	if s.cfg.MaxFiles > 0 && s.matched >= s.cfg.MaxFiles {
		s.limitHit = true
		return
	}
	info, err := entry.Info()
	if err != nil {
		return
	}
	s.scanRegular(abs, rel, info)
}

// scanFileRoot handles a root path that is itself a file.
func (s *scanState) scanFileRoot(abs string, info fs.FileInfo) {
	s.scanRegular(abs, filepath.Base(abs), info)
}

func (s *scanState) scanRegular(abs, rel string, info fs.FileInfo) {
	if !info.Mode().IsRegular() {
		return
	}
	// Size gate runs on stat data, before any read, so an oversized file
	// never stalls the scan.
	if info.Size() > s.cfg.MaxFileSize {
		return
	}
	if !allowedByGlobs(rel, s.cfg) {
		return
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return
	}
	if looksBinary(data) {
		return
	}
	if !s.cfg.NoCache {
		s.hashes[rel] = cache.Hash(data)
	}
	s.scanned++
	s.matched++
	if s.cfg.Progress != nil {
		s.cfg.Progress()
	}
	s.matchFile(rel, filepath.Base(rel), string(data))
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// looksBinary sniffs a NUL byte in the leading content, the same cheap
// heuristic used for skipping non-text files everywhere else.
func looksBinary(b []byte) bool {
	const sniff = 800
	n := len(b)
	if n > sniff {
		n = sniff
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// allowedByGlobs returns true if rel passes the include/exclude glob
// configuration. Include globs, when present, act as a positive filter;
// exclude globs are subtracted last. Matching uses forward-slash semantics.
func allowedByGlobs(rel string, cfg Config) bool {
	rp := strings.ReplaceAll(rel, "\\", "/")
	includes := parseGlobList(cfg.IncludeGlobs)
	excludes := parseGlobList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(path string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
