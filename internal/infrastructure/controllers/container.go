package controllers

import (
	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewLintController); err != nil {
		return err
	}
	if err := container.Provide(NewFormatController); err != nil {
		return err
	}
	if err := container.Provide(NewOutdatedController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	lintController *LintController,
	formatController *FormatController,
	outdatedController *OutdatedController,
) *[]entities.Controller {
	return &[]entities.Controller{
		lintController,
		formatController,
		outdatedController,
	}
}
