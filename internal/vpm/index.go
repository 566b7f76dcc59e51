package vpm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"boothvpm/internal/fileutil"
	"boothvpm/internal/logging"
)

// RequiredIndexFields are the top-level keys a client needs in index.json.
var RequiredIndexFields = []string{"name", "id", "url", "author", "packages"}

// Index is the repository listing served to the package-manager client.
type Index struct {
	Name     string                  `json:"name"`
	ID       string                  `json:"id"`
	URL      string                  `json:"url"`
	Author   string                  `json:"author"`
	Packages map[string]PackageEntry `json:"packages"`
}

// PackageEntry lists the published versions of one package.
type PackageEntry struct {
	Versions map[string]Manifest `json:"versions"`
}

// VersionCount returns the number of package versions listed in the index.
func (idx *Index) VersionCount() int {
	if idx == nil {
		return 0
	}
	total := 0
	for _, entry := range idx.Packages {
		total += len(entry.Versions)
	}
	return total
}

// IndexURL returns the file:/// URL of the repository index.
func IndexURL(repo Repository) string {
	return fileURL(repo.IndexPath())
}

// BuildIndex scans Packages/ and assembles an index without writing it.
// Package directories are visited in lexical order. Directories whose
// manifest is missing or unreadable are logged and skipped. When two
// directories publish the same name and version, the first one scanned is
// kept and the later one is logged and ignored.
func BuildIndex(repo Repository, logger *slog.Logger) (*Index, error) {
	repo = repo.WithDefaults()
	logger = logging.NewComponentLogger(logger, "index")

	index := &Index{
		Name:     repo.Name,
		ID:       repo.ID,
		URL:      IndexURL(repo),
		Author:   repo.Author,
		Packages: map[string]PackageEntry{},
	}

	entries, err := os.ReadDir(repo.PackagesDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return index, nil
		}
		return nil, wrap(ErrIndexWrite, "scan packages", repo.PackagesDir(), err)
	}

	// os.ReadDir returns entries sorted by filename.
	source := make(map[string]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifestPath := filepath.Join(repo.PackagesDir(), entry.Name(), ManifestFileName)
		manifest, err := ReadManifest(manifestPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("package directory has no manifest", logging.String("package_dir", entry.Name()))
			} else {
				logger.Warn("skipping unreadable manifest",
					logging.String("manifest", manifestPath),
					logging.Error(err),
				)
			}
			continue
		}
		pkg, ok := index.Packages[manifest.Name]
		if !ok {
			pkg = PackageEntry{Versions: map[string]Manifest{}}
			index.Packages[manifest.Name] = pkg
		}
		key := manifest.Name + "@" + manifest.Version
		if first, dup := source[key]; dup {
			logger.Warn("duplicate package version; keeping first",
				logging.String("package", manifest.Name),
				logging.String("version", manifest.Version),
				logging.String("kept_dir", first),
				logging.String("skipped_dir", entry.Name()),
				logging.Alert("duplicate_package_version"),
			)
			continue
		}
		source[key] = entry.Name()
		pkg.Versions[manifest.Version] = manifest
	}
	return index, nil
}

// RebuildIndex regenerates index.json from the packages on disk and replaces
// the previous file atomically. It returns the absolute index path.
func RebuildIndex(repo Repository, logger *slog.Logger) (string, error) {
	index, err := BuildIndex(repo, logger)
	if err != nil {
		return "", err
	}
	path, err := filepath.Abs(repo.IndexPath())
	if err != nil {
		return "", wrap(ErrIndexWrite, "resolve index path", repo.IndexPath(), err)
	}
	data, err := marshalDocument(index)
	if err != nil {
		return "", wrap(ErrIndexWrite, "encode index", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", wrap(ErrIndexWrite, "create repository root", filepath.Dir(path), err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", wrap(ErrIndexWrite, "write index", path, err)
	}
	logging.NewComponentLogger(logger, "index").Info("repository index written",
		logging.String("path", path),
		logging.Int("packages", len(index.Packages)),
		logging.Int("versions", index.VersionCount()),
	)
	return path, nil
}

// ReadIndex loads and parses index.json. A missing file yields ErrIndexMissing
// and malformed content ErrInvalidIndex.
func ReadIndex(repo Repository) (*Index, error) {
	data, err := os.ReadFile(repo.IndexPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, wrap(ErrIndexMissing, "read index", repo.IndexPath(), nil)
		}
		return nil, fmt.Errorf("read index %s: %w", repo.IndexPath(), err)
	}
	missing, err := missingIndexFields(data)
	if err != nil {
		return nil, wrap(ErrInvalidIndex, "parse index", repo.IndexPath(), err)
	}
	if len(missing) > 0 {
		return nil, wrap(ErrInvalidIndex, "parse index", fmt.Sprintf("missing fields: %v", missing), nil)
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, wrap(ErrInvalidIndex, "decode index", repo.IndexPath(), err)
	}
	if index.Packages == nil {
		index.Packages = map[string]PackageEntry{}
	}
	return &index, nil
}

// missingIndexFields reports which RequiredIndexFields are absent from an
// index document. A document that is not a JSON object is an error.
func missingIndexFields(data []byte) ([]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("index is not a JSON object")
	}
	var missing []string
	for _, name := range RequiredIndexFields {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
