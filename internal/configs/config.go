package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Paths     PathsConfig     `toml:"paths"`
	Benchmark BenchmarkConfig `toml:"benchmark"`
	Policy    TrustPolicy     `toml:"policy"`
}

// PathsConfig locates the protected artifacts, relative to the deployment
// root.
type PathsConfig struct {
	Model      string `toml:"model"`
	WrappedKey string `toml:"wrapped_key"`
	PrivateKey string `toml:"private_key"`
	PublicKey  string `toml:"public_key"`
	Results    string `toml:"results"`
}

type BenchmarkConfig struct {
	// Runs is the number of benchmark iterations.
	Runs int `toml:"runs"`

	// InputShape is the shape of the synthetic inference input. The product
	// of the dimensions must match the model's input width.
	InputShape []int `toml:"input_shape"`

	// ReloadEachRun re-reads the wrapped key and encrypted model from disk on
	// every iteration instead of caching the file bytes once.
	ReloadEachRun bool `toml:"reload_each_run"`
}

// DefaultConfig returns the configuration for a freshly laid-out deployment.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Model:      filepath.Join("model", "model.enc"),
			WrappedKey: filepath.Join("key", "content.key.enc"),
			PrivateKey: filepath.Join("key", "private.pem"),
			PublicKey:  filepath.Join("key", "public.pem"),
			Results:    "results",
		},
		Benchmark: BenchmarkConfig{
			Runs:          2000,
			InputShape:    []int{1, 784},
			ReloadEachRun: true,
		},
		Policy: DefaultTrustPolicy(),
	}
}

// LoadConfig loads the deployment config, falling back to defaults when the
// config file does not exist yet.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(Settings.ConfigPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(Settings.ConfigPath, config); err != nil {
		return nil, fmt.Errorf("failed to load deployment config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the deployment config to the config file.
func SaveConfig(config *Config) error {
	if err := SaveTOML(Settings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save deployment config: %w", err)
	}

	return nil
}

// Resolve joins a config-relative path with the deployment root. Absolute
// paths pass through unchanged.
func (c *Config) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(Settings.DeploymentPath, rel)
}
