package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewLintCommand); err != nil {
		return err
	}
	if err := container.Provide(NewFormatCommand); err != nil {
		return err
	}
	if err := container.Provide(NewOutdatedCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *LintCommand) Lint {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *FormatCommand) Format {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *OutdatedCommand) Outdated {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
