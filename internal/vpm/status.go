package vpm

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Overall repository states reported by Inspect.
const (
	StatusReady       = "Ready"
	StatusReadyManual = "Ready (Manual Addition)"
	StatusEmpty       = "Empty Repository"
	StatusFailed      = "Failed"
)

// Status summarizes whether a repository is ready to be added to the client.
type Status struct {
	RepositoryExists bool   `json:"repository_exists"`
	IndexValid       bool   `json:"index_valid"`
	PackagesFound    int    `json:"packages_found"`
	ProtocolWorks    bool   `json:"protocol_works"`
	ProtocolURL      string `json:"protocol_url,omitempty"`
	Overall          string `json:"overall_status"`
}

// Inspect reports the repository's readiness without modifying anything.
func Inspect(repo Repository) Status {
	status := Status{Overall: StatusFailed}

	info, err := os.Stat(repo.Root)
	if err != nil || !info.IsDir() {
		return status
	}
	status.RepositoryExists = true

	if index, err := ReadIndex(repo); err == nil {
		status.IndexValid = true
		status.PackagesFound = index.VersionCount()
	}
	if link, err := ProtocolURL(repo); err == nil && strings.HasPrefix(link, "vcc://") {
		status.ProtocolWorks = true
		status.ProtocolURL = link
	}

	if status.IndexValid {
		switch {
		case status.PackagesFound == 0:
			status.Overall = StatusEmpty
		case status.ProtocolWorks:
			status.Overall = StatusReady
		default:
			status.Overall = StatusReadyManual
		}
	}
	return status
}

// PackageSummary describes one package listed in the index.
type PackageSummary struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	Versions      []string `json:"versions"`
	LatestVersion string   `json:"latest_version"`
	Author        string   `json:"author"`
}

// ListPackages returns the packages in the repository index ordered by name.
// Versions are sorted ascending by semantic version.
func ListPackages(repo Repository) ([]PackageSummary, error) {
	index, err := ReadIndex(repo)
	if err != nil {
		return nil, err
	}
	summaries := make([]PackageSummary, 0, len(index.Packages))
	for name, entry := range index.Packages {
		versions := make([]string, 0, len(entry.Versions))
		for version := range entry.Versions {
			versions = append(versions, version)
		}
		SortVersions(versions)
		summary := PackageSummary{Name: name, Versions: versions}
		if len(versions) > 0 {
			summary.LatestVersion = versions[len(versions)-1]
			latest := entry.Versions[summary.LatestVersion]
			summary.DisplayName = latest.DisplayName
			summary.Author = latest.Author.Name
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

// SortVersions orders versions ascending by semantic version. Strings that are
// not valid semantic versions sort before valid ones, lexically among
// themselves.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		a, b := canonicalSemver(versions[i]), canonicalSemver(versions[j])
		if cmp := semver.Compare(a, b); cmp != 0 {
			return cmp < 0
		}
		return versions[i] < versions[j]
	})
}

func canonicalSemver(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
