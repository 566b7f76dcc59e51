package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. Callers close the returned context
// once execution finishes so the catalog and log file are released even when
// a command fails.
func newRootCommand() (*cobra.Command, *commandContext) {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "boothvpm",
		Short:         "Package Booth asset folders into a local VPM repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	for _, cmd := range newRepositoryCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range newPackageCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newItemsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd, ctx
}
