package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boothvpm/internal/config"
	"boothvpm/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("BOOTHVPM_CONFIG", "")

	configPath := filepath.Join(base, "config.toml")
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd, cmdCtx := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	if closeErr := cmdCtx.close(); closeErr != nil {
		t.Fatalf("close command context: %v", closeErr)
	}
	return stdout.String(), stderr.String(), err
}

// newImportableFolder creates an asset folder with a sidecar under the test
// base directory and returns its path.
func newImportableFolder(t *testing.T, env *cliTestEnv, name string, sidecar map[string]any) string {
	t.Helper()
	folder := testsupport.NewAssetFolder(t, filepath.Join(env.baseDir, "assets"), name, map[string]string{
		"Prop.unitypackage":  "unity",
		"Textures/Prop.png":  "png",
		"images/preview.jpg": "jpg",
	})
	testsupport.WriteSidecar(t, folder, sidecar)
	return folder
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
