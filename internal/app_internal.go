package internal

import (
	"github.com/rios0rios0/reqlint/internal/domain/entities"
)

// AppInternal aggregates every CLI controller for the root command.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application aggregate.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
