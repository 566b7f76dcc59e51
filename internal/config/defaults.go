package config

const (
	defaultConfigPath       = "~/.config/boothvpm/config.toml"
	defaultDataDir          = "~/.local/share/boothvpm"
	defaultRepositoryDir    = "~/.local/share/boothvpm/repository"
	defaultRepositoryName   = "Booth Assets Collection"
	defaultRepositoryID     = "com.boothassetsmanager.repository"
	defaultRepositoryAuthor = "booth-assets-manager@example.com"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"

	configPathEnv   = "BOOTHVPM_CONFIG"
	catalogFileName = "catalog.db"
	lockFileName    = "repository.lock"
	logDirName      = "logs"
)

// Default returns a Config populated with repository defaults. Packaging is
// disabled until the user opts in.
func Default() Config {
	return Config{
		Paths: Paths{
			RepositoryDir: defaultRepositoryDir,
			DataDir:       defaultDataDir,
		},
		Repository: Repository{
			Name:   defaultRepositoryName,
			ID:     defaultRepositoryID,
			Author: defaultRepositoryAuthor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
