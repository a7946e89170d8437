package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration to dir if there isn't one
// already, then loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, err
	}

	fsys := afero.NewBasePathFs(afero.NewOsFs(), abs)
	if err := initializeFs(fsys, logger); err != nil {
		return nil, err
	}

	logger.Printf("Configuration is in %s\n", abs)
	return LoadFs(fsys)
}

func initializeFs(fsys afero.Fs, logger *log.Logger) error {
	exists, err := afero.Exists(fsys, ConfigurationName)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("%s already exists, leaving it alone\n", ConfigurationName)
		return nil
	}

	logger.Printf("Writing %s\n", ConfigurationName)
	return afero.WriteFile(fsys, ConfigurationName, defaultConfigData, 0600)
}
