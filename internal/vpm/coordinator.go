package vpm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"boothvpm/internal/logging"
)

// Outcome classifies the result of a lifecycle operation.
type Outcome string

const (
	OutcomePackaged    Outcome = "packaged"
	OutcomeRemoved     Outcome = "removed"
	OutcomeNotPackaged Outcome = "not_packaged"
	OutcomeFailed      Outcome = "failed"
)

// Result reports what happened to a single item. NotPackaged marks a
// precondition no-op, Failed an I/O or persistence error carried in Err.
type Result struct {
	ItemID    string  `json:"item_id"`
	PackageID string  `json:"package_id,omitempty"`
	Outcome   Outcome `json:"outcome"`
	Message   string  `json:"message"`
	Err       error   `json:"-"`
}

// OK reports whether the operation did what was asked.
func (r Result) OK() bool {
	return r.Outcome == OutcomePackaged || r.Outcome == OutcomeRemoved
}

// Coordinator runs package lifecycle operations against one repository and
// records the outcome through a Recorder.
type Coordinator struct {
	repo     Repository
	recorder Recorder
	logger   *slog.Logger
}

// NewCoordinator constructs a coordinator. A nil logger discards output.
func NewCoordinator(repo Repository, recorder Recorder, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		repo:     repo.WithDefaults(),
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "packager"),
	}
}

// Repository returns the repository the coordinator operates on.
func (c *Coordinator) Repository() Repository {
	return c.repo
}

// PackageItem derives the item's identifier, materializes the package,
// records the identity, and rebuilds the index. Persistence is untouched when
// materializing fails.
func (c *Coordinator) PackageItem(ctx context.Context, item Item) Result {
	ctx = logging.ContextWithItemID(ctx, item.ID)
	logger := logging.WithContext(ctx, c.logger)
	result := Result{ItemID: item.ID}

	if strings.TrimSpace(item.ID) == "" {
		return c.fail(logger, result, "packaging", wrap(ErrInvalidItem, "package item", "item has no id", nil))
	}

	identifier := IdentifierFor(item)
	if !ValidIdentifier(identifier) {
		return c.fail(logger, result, "packaging", wrap(ErrInvalidItem, "package item", fmt.Sprintf("item id %q has no usable characters", item.ID), nil))
	}
	result.PackageID = identifier
	logger.Info("packaging item",
		logging.String("title", strings.TrimSpace(item.Title)),
		logging.String("package_id", identifier),
		logging.String("asset_folder", item.AssetFolder),
	)

	packageDir, stats, err := Materialize(c.repo, item, identifier)
	if err != nil {
		return c.fail(logger, result, "packaging", err)
	}
	logger.Debug("package materialized",
		logging.String("package_dir", packageDir),
		logging.Int("runtime_files", stats.RuntimeFiles),
		logging.Int("images", stats.Images),
	)

	if err := c.record(ctx, item.ID, identifier, PackageVersion, true); err != nil {
		return c.fail(logger, result, "packaging", err)
	}
	c.removeSuperseded(logger, item, identifier)
	if _, err := RebuildIndex(c.repo, logger); err != nil {
		return c.fail(logger, result, "packaging", err)
	}

	result.Outcome = OutcomePackaged
	result.Message = fmt.Sprintf("Created package %s for %s (%s)", identifier, displayTitle(item), item.ID)
	logger.Info("package created", logging.String("package_id", identifier))
	return result
}

// UnpackageItem removes the item's package directory, clears its recorded
// identity, and rebuilds the index. Items without a recorded package produce
// OutcomeNotPackaged and change nothing. A package directory that is already
// gone counts as removed.
func (c *Coordinator) UnpackageItem(ctx context.Context, item Item) Result {
	ctx = logging.ContextWithItemID(ctx, item.ID)
	logger := logging.WithContext(ctx, c.logger)
	result := Result{ItemID: item.ID, PackageID: strings.TrimSpace(item.PackageID)}

	if !item.IsPackaged() {
		result.Outcome = OutcomeNotPackaged
		result.Err = wrap(ErrNotPackaged, "unpackage item", item.ID, nil)
		result.Message = fmt.Sprintf("Item %s is not packaged", item.ID)
		logger.Info("unpackage skipped; item not packaged")
		return result
	}

	if !ValidIdentifier(result.PackageID) {
		return c.fail(logger, result, "unpackaging", wrap(ErrPackageRemoval, "remove package directory", fmt.Sprintf("refusing invalid package id %q", result.PackageID), nil))
	}
	packageDir := c.repo.PackageDir(result.PackageID)
	if err := os.RemoveAll(packageDir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c.fail(logger, result, "unpackaging", wrap(ErrPackageRemoval, "remove package directory", packageDir, err))
	}
	if err := c.record(ctx, item.ID, "", "", false); err != nil {
		return c.fail(logger, result, "unpackaging", err)
	}
	if _, err := RebuildIndex(c.repo, logger); err != nil {
		return c.fail(logger, result, "unpackaging", err)
	}

	result.Outcome = OutcomeRemoved
	result.Message = fmt.Sprintf("Removed package %s for %s (%s)", result.PackageID, displayTitle(item), item.ID)
	logger.Info("package removed", logging.String("package_id", result.PackageID))
	return result
}

// PackageAll packages every item not yet packaged and returns how many
// succeeded along with the per-item results. Failures do not stop the run.
// The index is rebuilt once more at the end when anything was packaged.
func (c *Coordinator) PackageAll(ctx context.Context, items []Item) (int, []Result) {
	results := make([]Result, 0, len(items))
	packaged := 0
	for _, item := range items {
		if item.Packaged {
			continue
		}
		if err := ctx.Err(); err != nil {
			results = append(results, Result{ItemID: item.ID, Outcome: OutcomeFailed, Err: err, Message: err.Error()})
			continue
		}
		res := c.PackageItem(ctx, item)
		if res.OK() {
			packaged++
		}
		results = append(results, res)
	}

	if packaged > 0 {
		if _, err := RebuildIndex(c.repo, c.logger); err != nil {
			c.logger.Warn("final index rebuild failed", logging.Error(err))
		}
		c.logger.Info("bulk packaging finished", logging.Int("packaged", packaged), logging.Int("attempted", len(results)))
	} else {
		c.logger.Info("no new items were packaged", logging.Int("attempted", len(results)))
	}
	return packaged, results
}

// removeSuperseded deletes the package directory recorded for item before a
// re-package derived a different identifier, such as after a title change.
// Failures are logged; the new package is already in place.
func (c *Coordinator) removeSuperseded(logger *slog.Logger, item Item, identifier string) {
	previous := strings.TrimSpace(item.PackageID)
	if !item.IsPackaged() || previous == identifier {
		return
	}
	if !ValidIdentifier(previous) {
		logger.Warn("previous package id is invalid; leaving it in place",
			logging.String("previous_package_id", previous),
			logging.Alert("invalid_package_id"),
		)
		return
	}
	if err := os.RemoveAll(c.repo.PackageDir(previous)); err != nil {
		logger.Warn("could not remove superseded package",
			logging.String("previous_package_id", previous),
			logging.Error(err),
		)
		return
	}
	logger.Info("superseded package removed",
		logging.String("previous_package_id", previous),
		logging.String("package_id", identifier),
	)
}

// RegenerateIndex rebuilds index.json for the coordinator's repository.
func (c *Coordinator) RegenerateIndex(ctx context.Context) (string, error) {
	return RebuildIndex(c.repo, logging.WithContext(ctx, c.logger))
}

func (c *Coordinator) record(ctx context.Context, itemID, packageID, version string, packaged bool) error {
	if c.recorder == nil {
		return nil
	}
	if err := c.recorder.RecordPackage(ctx, itemID, packageID, version, packaged); err != nil {
		return wrap(ErrPersistence, "record package", itemID, err)
	}
	return nil
}

func (c *Coordinator) fail(logger *slog.Logger, result Result, action string, err error) Result {
	result.Outcome = OutcomeFailed
	result.Err = err
	result.Message = fmt.Sprintf("Error %s item %s: %v", action, result.ItemID, err)
	logger.Error("package operation failed", logging.String("action", action), logging.Error(err))
	return result
}

func displayTitle(item Item) string {
	if title := strings.TrimSpace(item.Title); title != "" {
		return title
	}
	return defaultDisplayName
}
