package configs

import (
	"log"
	"os"
	"path/filepath"
)

type DeploymentSettings struct {
	DeploymentPath string
	ConfigPath     string
	ResultsPath    string
}

var Settings *DeploymentSettings

func init() {
	root := os.Getenv("SECUREMODEL_HOME")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("error getting working directory: %s", err)
		}
		root = wd
	}

	root, err := filepath.Abs(root)
	if err != nil {
		log.Fatalf("error resolving deployment path: %s", err)
	}

	Settings = &DeploymentSettings{
		DeploymentPath: root,
		ConfigPath:     filepath.Join(root, "securemodel.toml"),
		ResultsPath:    filepath.Join(root, "results"),
	}
}

// SetDeploymentPath points the settings at a different deployment root.
// Used by tests and by commands that take an explicit --deployment flag.
func SetDeploymentPath(root string) {
	Settings = &DeploymentSettings{
		DeploymentPath: root,
		ConfigPath:     filepath.Join(root, "securemodel.toml"),
		ResultsPath:    filepath.Join(root, "results"),
	}
}
