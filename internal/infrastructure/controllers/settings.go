package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
)

// loadSettings resolves the configuration for a controller run: the
// --config flag, then the standard file locations, then built-in
// defaults when no config file exists.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debug("No config file found, using defaults")
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}

// pathArg returns the manifest path argument, defaulting to the current
// directory.
func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
