package internal

import "github.com/rios0rios0/devtools/internal/domain/entities"

// AppInternal holds everything the command line needs to wire itself.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the AppInternal from the registered controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
