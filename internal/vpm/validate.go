package vpm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// ValidationResult collects the problems found in a repository and the
// repairs applied to them.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
	Fixes  []string `json:"fixes"`
}

func (r *ValidationResult) addIssue(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addFix(format string, args ...any) {
	r.Fixes = append(r.Fixes, fmt.Sprintf(format, args...))
}

// Validate checks the repository root, the Packages directory, and the index
// document, in that order. With fix set, each problem is repaired as it is
// found: directories are created and the index is regenerated. A failed
// repair is reported as an additional issue. The result is valid when there
// were no issues or every issue received a fix.
//
// Validate never removes package directories and never rewrites individual
// manifests; broken manifests are left to the index rebuild, which skips them.
func Validate(repo Repository, fix bool, logger *slog.Logger) ValidationResult {
	result := ValidationResult{Issues: []string{}, Fixes: []string{}}

	ensureDir := func(label, path string) {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return
		case err == nil:
			result.addIssue("%s is not a directory: %s", label, path)
			return
		case !errors.Is(err, fs.ErrNotExist):
			result.addIssue("cannot access %s %s: %v", strings.ToLower(label), path, err)
			return
		}
		result.addIssue("%s does not exist: %s", label, path)
		if !fix {
			return
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			result.addIssue("failed to create %s: %v", strings.ToLower(label), err)
			return
		}
		result.addFix("created %s: %s", strings.ToLower(label), path)
	}

	regenerate := func(reason string) {
		if !fix {
			return
		}
		if _, err := RebuildIndex(repo, logger); err != nil {
			result.addIssue("failed to regenerate repository index: %v", err)
			return
		}
		result.addFix("regenerated repository index %s", reason)
	}

	ensureDir("Repository directory", repo.Root)
	ensureDir("Packages directory", repo.PackagesDir())

	indexPath := repo.IndexPath()
	data, err := os.ReadFile(indexPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.addIssue("repository index does not exist: %s", indexPath)
		regenerate("(was missing)")
	case err != nil:
		result.addIssue("error reading repository index: %v", err)
		regenerate("(was unreadable)")
	default:
		missing, parseErr := missingIndexFields(data)
		switch {
		case parseErr != nil:
			result.addIssue("repository index is not valid JSON: %s", indexPath)
			regenerate("with valid JSON")
		case len(missing) > 0:
			result.addIssue("repository index missing required fields: %s", strings.Join(missing, ", "))
			regenerate("with required fields")
		}
	}

	result.Valid = len(result.Issues) == 0 || len(result.Fixes) == len(result.Issues)
	return result
}
