package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqlint/internal"
	"github.com/rios0rios0/reqlint/internal/infrastructure/controllers"
)

func buildRootCommand(lintController *controllers.LintController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "reqlint [path]",
		Short: "Linter and formatter for pip requirements manifests",
		Long: `A CLI tool that parses pip requirements manifests, checks them for
malformed records, duplicate packages, conflicting pins, unsorted
records and policy violations, renders them canonically, and reports
pins that are behind the package index.

Usage modes:
  reqlint .                  Lint the requirements.txt in the current directory
  reqlint lint [path]        Same, explicit subcommand
  reqlint fmt --write [path] Rewrite the manifest in canonical form
  reqlint outdated [path]    Report pins behind the package index`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			return lintController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().Bool("strict", false,
		"Promote warnings to errors")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fc, ok := ctrl.(*controllers.FormatController); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	lintController := injectLintController()
	cobraRoot := buildRootCommand(lintController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	cobra.OnInitialize(func() {
		if verbose, _ := cobraRoot.PersistentFlags().GetBool("verbose"); verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	})

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'reqlint': %s", err)
	}
}
