package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"boothvpm/internal/catalog"
	"boothvpm/internal/vpm"
)

func newPackageCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newPackageCommand(ctx),
		newUnpackageCommand(ctx),
		newPackageAllCommand(ctx),
	}
}

// runItemOperation takes the repository lock, then loads one catalog item and
// applies op to it, so the package state op sees cannot change underneath it.
func runItemOperation(cmd *cobra.Command, ctx *commandContext, itemID string, op func(*vpm.Coordinator, context.Context, vpm.Item) vpm.Result) (vpm.Result, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return vpm.Result{}, err
	}
	if err := requireEnabled(cfg); err != nil {
		return vpm.Result{}, err
	}
	runCtx := ctx.runContext(cmd)
	coord, store, err := ctx.coordinator(runCtx)
	if err != nil {
		return vpm.Result{}, err
	}

	var result vpm.Result
	err = withRepositoryLock(cfg, func() error {
		item, err := store.Get(runCtx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %s not found: %w", itemID, catalog.ErrItemNotFound)
		}
		result = op(coord, runCtx, item.ToVPM())
		return nil
	})
	return result, err
}

func newPackageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "package <item-id>",
		Short: "Create or refresh the VPM package for one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runItemOperation(cmd, ctx, args[0], (*vpm.Coordinator).PackageItem)
			if err != nil {
				return err
			}
			if !result.OK() {
				return result.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newUnpackageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unpackage <item-id>",
		Short: "Remove the VPM package for one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runItemOperation(cmd, ctx, args[0], (*vpm.Coordinator).UnpackageItem)
			if err != nil {
				return err
			}
			switch result.Outcome {
			case vpm.OutcomeRemoved, vpm.OutcomeNotPackaged:
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			default:
				return result.Err
			}
		},
	}
}

type packageAllReport struct {
	Packaged int          `json:"packaged"`
	Results  []vpm.Result `json:"results"`
}

func newPackageAllCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "package-all",
		Short: "Package every catalog item that is not packaged yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := requireEnabled(cfg); err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			coord, store, err := ctx.coordinator(runCtx)
			if err != nil {
				return err
			}
			report := packageAllReport{Results: []vpm.Result{}}
			err = withRepositoryLock(cfg, func() error {
				items, err := store.List(runCtx)
				if err != nil {
					return err
				}
				packaged, results := coord.PackageAll(runCtx, catalog.ToVPMItems(items))
				report.Packaged = packaged
				report.Results = append(report.Results, results...)
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			if len(report.Results) == 0 {
				fmt.Fprintln(out, "No unpackaged items found.")
				return nil
			}
			rows := make([][]string, 0, len(report.Results))
			for _, res := range report.Results {
				rows = append(rows, []string{res.ItemID, string(res.Outcome), res.PackageID, res.Message})
			}
			printTable(out, []string{"Item", "Outcome", "Package", "Message"}, rows, nil, "")
			fmt.Fprintf(out, "Packaged %d of %d items.\n", report.Packaged, len(report.Results))
			if err := runCtx.Err(); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
