package main

import (
	"github.com/rios0rios0/reqlint/internal"
	"github.com/rios0rios0/reqlint/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectLintController() *controllers.LintController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var lintController *controllers.LintController
	if err := container.Invoke(func(lc *controllers.LintController) {
		lintController = lc
	}); err != nil {
		panic(err)
	}

	return lintController
}
