package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqlint/internal/domain/commands"
	"github.com/rios0rios0/reqlint/internal/domain/entities"
)

// OutdatedController handles the "outdated" subcommand.
type OutdatedController struct {
	command commands.Outdated
}

// NewOutdatedController creates a new OutdatedController.
func NewOutdatedController(command commands.Outdated) *OutdatedController {
	return &OutdatedController{command: command}
}

// GetBind returns the Cobra command metadata for the outdated controller.
func (it *OutdatedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "outdated [path]",
		Short: "Report pinned records with newer releases on the index",
		Long: `Query the package index for every exactly-pinned record and report
the ones whose pin is behind the latest published release.

The report is informational: outdated pins do not fail the run, and a
package the index cannot answer for is skipped with a warning.`,
	}
}

// Execute runs the outdated command.
func (it *OutdatedController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	outdated, checkErr := it.command.Execute(ctx, settings, commands.OutdatedOptions{
		Path:   pathArg(args),
		DryRun: dryRun,
	})
	if checkErr != nil {
		return checkErr
	}
	if dryRun {
		return nil
	}

	if len(outdated) == 0 {
		logger.Info("[outdated] All pins are up to date")
		return nil
	}

	for _, pin := range outdated {
		logger.Warnf(
			"[outdated] %s %s -> %s (line %d)",
			pin.Name, pin.CurrentVer, pin.LatestVer, pin.Line,
		)
	}

	return nil
}
