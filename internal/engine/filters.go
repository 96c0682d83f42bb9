package engine

// Directory names skipped during recursion unless the caller overrides the
// ignore list. Matching is by exact base name, never by path.
var defaultIgnoreDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"out",
	"target",
	".venv",
	"venv",
	"__pycache__",
	"coverage",
	".next",
	".cache",
}

// File names skipped during recursion. Lockfiles are machine-generated and
// noisy; OS cruft carries nothing to scan.
var defaultIgnoreFiles = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"poetry.lock",
	"composer.lock",
	"Cargo.lock",
	".DS_Store",
	"Thumbs.db",
}
