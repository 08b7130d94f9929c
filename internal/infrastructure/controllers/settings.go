package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// loadSettings reads the global --config and --verbose flags and loads the
// project settings.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	configPath, _ := cmd.Flags().GetString("config")
	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}
