package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqlint/internal/domain/commands"
	"github.com/rios0rios0/reqlint/internal/domain/entities"
)

// LintController handles the "lint" subcommand (and the root command
// when called with a path).
type LintController struct {
	command commands.Lint
}

// NewLintController creates a new LintController.
func NewLintController(command commands.Lint) *LintController {
	return &LintController{command: command}
}

// GetBind returns the Cobra command metadata for the lint controller.
func (it *LintController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "lint [path]",
		Short: "Check a requirements manifest against the rule set",
		Long: `Check a pip requirements manifest for malformed records, duplicate
packages, conflicting pins, unsorted records, unpinned records, and
version policy violations.

Warnings alone do not fail the run; use --strict to promote them.`,
	}
}

// Execute runs the lint command and maps error findings to a non-zero exit.
func (it *LintController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")

	findings, lintErr := it.command.Execute(ctx, settings, commands.LintOptions{
		Path:   pathArg(args),
		Strict: strict,
	})
	if lintErr != nil {
		return lintErr
	}

	errorCount := 0
	for _, finding := range findings {
		switch finding.Severity {
		case entities.SeverityError:
			errorCount++
			logger.Error(finding.String())
		case entities.SeverityWarning:
			logger.Warn(finding.String())
		default:
			logger.Info(finding.String())
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("found %d problem(s)", errorCount)
	}

	logger.Infof("[lint] OK (%d finding(s), none fatal)", len(findings))
	return nil
}
