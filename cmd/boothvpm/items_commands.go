package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boothvpm/internal/catalog"
	"boothvpm/internal/logging"
	"boothvpm/internal/vpm"
)

func newItemsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage imported Booth items",
	}
	cmd.AddCommand(newItemsImportCommand(ctx))
	cmd.AddCommand(newItemsListCommand(ctx))
	cmd.AddCommand(newItemsRemoveCommand(ctx))
	return cmd
}

func newItemsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <folder>...",
		Short: "Import asset folders described by a metadata.json sidecar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			logger := logging.NewComponentLogger(ctx.loggerFor(runCtx), "catalog")
			store, err := ctx.catalog()
			if err != nil {
				return err
			}
			autoPackage := cfg.Repository.Enabled && cfg.Repository.AutoPackage

			out := cmd.OutOrStdout()
			failed := 0
			var imported []*catalog.Item
			for _, folder := range args {
				item, err := catalog.ItemFromSidecar(folder)
				if err != nil {
					failed++
					logger.Warn("import skipped", logging.String("folder", folder), logging.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s: %v\n", folder, err)
					continue
				}
				stored, err := store.Upsert(runCtx, item)
				if err != nil {
					return err
				}
				logger.Info("item imported",
					logging.String(logging.FieldItemID, stored.ID),
					logging.String("asset_folder", stored.AssetFolder),
				)
				fmt.Fprintf(out, "Imported %s: %s\n", stored.ID, stored.Title)
				imported = append(imported, stored)
			}

			if autoPackage && len(imported) > 0 {
				coord, _, err := ctx.coordinator(runCtx)
				if err != nil {
					return err
				}
				err = withRepositoryLock(cfg, func() error {
					for _, item := range imported {
						result := coord.PackageItem(runCtx, item.ToVPM())
						if !result.OK() {
							failed++
							fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", result.Message)
							continue
						}
						fmt.Fprintln(out, result.Message)
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d folders could not be imported or packaged", failed, len(args))
			}
			return nil
		},
	}
}

type itemView struct {
	ID             string     `json:"item_id"`
	Title          string     `json:"title"`
	Creator        string     `json:"creator,omitempty"`
	URL            string     `json:"url,omitempty"`
	AssetFolder    string     `json:"folder_path"`
	Packaged       bool       `json:"is_packaged"`
	PackageID      string     `json:"package_id,omitempty"`
	PackageVersion string     `json:"package_version,omitempty"`
	LastPackaged   *time.Time `json:"last_packaged,omitempty"`
}

func newItemView(item *catalog.Item) itemView {
	return itemView{
		ID:             item.ID,
		Title:          item.Title,
		Creator:        item.Creator,
		URL:            item.SourceURL,
		AssetFolder:    item.AssetFolder,
		Packaged:       item.Packaged,
		PackageID:      item.PackageID,
		PackageVersion: item.PackageVersion,
		LastPackaged:   item.LastPackaged,
	}
}

func newItemsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var packagedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List imported items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.catalog()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			var items []*catalog.Item
			if packagedOnly {
				items, err = store.ListPackaged(runCtx)
			} else {
				items, err = store.List(runCtx)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				views := make([]itemView, 0, len(items))
				for _, item := range items {
					views = append(views, newItemView(item))
				}
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{item.ID, item.Title, item.Creator, yesNo(item.Packaged), item.PackageID})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "Title", "Creator", "Packaged", "Package"}, rows, nil, "No items imported.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&packagedOnly, "packaged", false, "Only list packaged items")
	return cmd
}

func newItemsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the catalog, unpackaging it first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			coord, store, err := ctx.coordinator(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return withRepositoryLock(cfg, func() error {
				item, err := store.Get(runCtx, args[0])
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("item %s not found: %w", args[0], catalog.ErrItemNotFound)
				}
				if item.Packaged {
					if err := requireEnabled(cfg); err != nil {
						return fmt.Errorf("item %s is packaged: %w", item.ID, err)
					}
					result := coord.UnpackageItem(runCtx, item.ToVPM())
					if result.Outcome == vpm.OutcomeFailed {
						return result.Err
					}
					fmt.Fprintln(out, result.Message)
				}
				if _, err := store.Remove(runCtx, item.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed item %s from the catalog.\n", item.ID)
				return nil
			})
		},
	}
}
