package entities

import (
	"os"

	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings require a config file path and are loaded by the controllers.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() (Environment, error) {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return Environment{}, err
		}
		return NewEnvironment(os.LookupEnv, workingDirectory), nil
	})
}
