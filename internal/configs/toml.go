package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML persists a config document, creating its parent directory
// first. The deployment config carries the trust policy and integrity
// manifest, so the directory is created private to the owner.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML reads a config document into data. Fields absent from the
// file keep whatever defaults data already holds, which is how a
// partial securemodel.toml inherits the default policy.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
