package main

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"boothvpm/internal/logging"
	"boothvpm/internal/vpm"
)

// openURL hands a URL to the operating system's default handler.
var openURL = browser.OpenURL

func newRepositoryCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newEnableCommand(ctx),
		newDisableCommand(ctx),
		newRegenerateCommand(ctx),
		newValidateCommand(ctx),
		newStatusCommand(ctx),
		newAddToVCCCommand(ctx),
	}
}

func newEnableCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Enable VPM packaging and create the repository structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.Set("repository.enabled", "true"); err != nil {
				return err
			}
			if err := cfg.Save(ctx.configPath); err != nil {
				return err
			}

			runCtx := ctx.runContext(cmd)
			repo := repositoryFromConfig(cfg)
			var result vpm.ValidationResult
			err = withRepositoryLock(cfg, func() error {
				result = vpm.Validate(repo, true, ctx.loggerFor(runCtx))
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "VPM packaging enabled.")
			fmt.Fprintf(out, "Repository: %s\n", repo.Root)
			for _, fix := range result.Fixes {
				fmt.Fprintf(out, "- %s\n", fix)
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "! %s\n", issue)
				}
				return fmt.Errorf("repository structure could not be created at %s", repo.Root)
			}
			return nil
		},
	}
}

func newDisableCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Disable VPM packaging (existing packages are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.Set("repository.enabled", "false"); err != nil {
				return err
			}
			if err := cfg.Save(ctx.configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "VPM packaging disabled.")
			return nil
		},
	}
}

func newRegenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Rebuild index.json from the packages on disk",
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
			coord, _, err := ctx.coordinator(runCtx)
			if err != nil {
				return err
			}
			var path string
			err = withRepositoryLock(cfg, func() error {
				var rebuildErr error
				path, rebuildErr = coord.RegenerateIndex(runCtx)
				return rebuildErr
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Repository index regenerated at %s\n", path)
			return nil
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var fix bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the repository structure and index",
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
			repo := repositoryFromConfig(cfg)

			var result vpm.ValidationResult
			run := func() error {
				result = vpm.Validate(repo, fix, ctx.loggerFor(runCtx))
				return nil
			}
			if fix {
				err = withRepositoryLock(cfg, run)
			} else {
				err = run()
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			if len(result.Issues) == 0 {
				fmt.Fprintln(out, "Repository structure is valid.")
				return nil
			}
			fmt.Fprintln(out, "Repository structure has issues:")
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "- %s\n", issue)
			}
			if len(result.Fixes) > 0 {
				fmt.Fprintln(out, "\nFixed issues:")
				for _, f := range result.Fixes {
					fmt.Fprintf(out, "- %s\n", f)
				}
			} else if !fix {
				fmt.Fprintln(out, "\nUse --fix to automatically fix these issues.")
			}
			if !result.Valid {
				return fmt.Errorf("repository %s is invalid", repo.Root)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Create missing directories and regenerate a broken index")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

type statusReport struct {
	RepositoryPath string               `json:"repository_path"`
	Status         vpm.Status           `json:"status"`
	PackagedItems  int                  `json:"packaged_items"`
	CatalogItems   int                  `json:"catalog_items"`
	Packages       []vpm.PackageSummary `json:"packages"`
	AutoPackage    bool                 `json:"auto_package"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show repository readiness and published packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := requireEnabled(cfg); err != nil {
				return err
			}
			repo := repositoryFromConfig(cfg)
			store, err := ctx.catalog()
			if err != nil {
				return err
			}
			stats, err := store.Stats(ctx.runContext(cmd))
			if err != nil {
				return err
			}

			report := statusReport{
				RepositoryPath: repo.Root,
				Status:         vpm.Inspect(repo),
				PackagedItems:  stats.Packaged,
				CatalogItems:   stats.Items,
				AutoPackage:    cfg.Repository.AutoPackage,
			}
			if report.Status.IndexValid {
				if report.Packages, err = vpm.ListPackages(repo); err != nil {
					return err
				}
			}
			if report.Packages == nil {
				report.Packages = []vpm.PackageSummary{}
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}
			renderStatus(cmd, cfg.Repository.Name, cfg.Repository.ID, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func renderStatus(cmd *cobra.Command, name, id string, report statusReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	st := report.Status

	lines := renderSectionHeader("Repository", colorize)
	lines = append(lines,
		renderStatusLine("Path", statusInfo, report.RepositoryPath, colorize),
		renderStatusLine("Name", statusInfo, fmt.Sprintf("%s (%s)", name, id), colorize),
		renderStatusLine("Exists", boolStatus(st.RepositoryExists, statusError), yesNo(st.RepositoryExists), colorize),
		renderStatusLine("Index valid", boolStatus(st.IndexValid, statusError), yesNo(st.IndexValid), colorize),
		renderStatusLine("Packages", statusInfo, fmt.Sprintf("%d", st.PackagesFound), colorize),
		renderStatusLine("VCC protocol", boolStatus(st.ProtocolWorks, statusWarn), yesNo(st.ProtocolWorks), colorize),
		renderStatusLine("Overall", overallKind(st.Overall), st.Overall, colorize),
	)
	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Catalog", colorize)...)
	lines = append(lines,
		renderStatusLine("Items", statusInfo, fmt.Sprintf("%d", report.CatalogItems), colorize),
		renderStatusLine("Packaged items", statusInfo, fmt.Sprintf("%d", report.PackagedItems), colorize),
		renderStatusLine("Auto-package", statusInfo, yesNo(report.AutoPackage), colorize),
	)
	fmt.Fprintln(out, strings.Join(lines, "\n"))

	if len(report.Packages) == 0 {
		return
	}
	fmt.Fprintln(out)
	rows := make([][]string, 0, len(report.Packages))
	for _, pkg := range report.Packages {
		rows = append(rows, []string{pkg.Name, pkg.DisplayName, pkg.LatestVersion, pkg.Author})
	}
	printTable(out, []string{"Package", "Display Name", "Version", "Author"}, rows, nil, "")
}

func newAddToVCCCommand(ctx *commandContext) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "add-to-vcc",
		Short: "Open the vcc:// link that adds this repository to the Creator Companion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := requireEnabled(cfg); err != nil {
				return err
			}
			repo := repositoryFromConfig(cfg)
			out := cmd.OutOrStdout()

			link, err := vpm.ProtocolURL(repo)
			if err != nil {
				return fmt.Errorf("%w (run `boothvpm regenerate` first)", err)
			}
			if printOnly {
				fmt.Fprintln(out, link)
				return nil
			}

			browser.Stdout = cmd.ErrOrStderr()
			browser.Stderr = cmd.ErrOrStderr()
			if err := openURL(link); err != nil {
				ctx.loggerFor(ctx.runContext(cmd)).Warn("could not open vcc link",
					logging.String("url", link),
					logging.Error(err),
				)
				fmt.Fprintln(out, "Failed to open the VCC link. Add the repository manually:")
				fmt.Fprintf(out, "Repository URL: %s\n", vpm.IndexURL(repo))
				return nil
			}
			fmt.Fprintln(out, "VCC link opened.")
			fmt.Fprintf(out, "If nothing happened, add %s in the Creator Companion manually.\n", vpm.IndexURL(repo))
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the vcc:// link instead of opening it")
	return cmd
}
