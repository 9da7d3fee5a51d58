package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqlint/internal/domain/commands"
	"github.com/rios0rios0/reqlint/internal/domain/entities"
)

// FormatController handles the "fmt" subcommand.
type FormatController struct {
	command commands.Format
}

// NewFormatController creates a new FormatController.
func NewFormatController(command commands.Format) *FormatController {
	return &FormatController{command: command}
}

// GetBind returns the Cobra command metadata for the format controller.
func (it *FormatController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "fmt [path]",
		Short: "Render a requirements manifest in canonical form",
		Long: `Render a pip requirements manifest canonically: header preserved
verbatim, duplicate records merged (a pin wins over a bare name),
records sorted case-insensitively by normalized package name.

By default the result is printed to stdout. Use --write to rewrite the
file in place, --check to fail when the file is not already canonical,
or --commit to also commit the rewritten manifest.`,
	}
}

// Execute runs the format command.
func (it *FormatController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	commit, _ := cmd.Flags().GetBool("commit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	result, fmtErr := it.command.Execute(ctx, settings, commands.FormatOptions{
		Path:   pathArg(args),
		Write:  write,
		Check:  check,
		Commit: commit,
		DryRun: dryRun,
	})
	if fmtErr != nil {
		return fmtErr
	}

	if !write && !check && !commit && !dryRun {
		fmt.Fprint(cmd.OutOrStdout(), result.Rendered)
	}

	return nil
}

// AddFlags adds the fmt-specific flags to the given Cobra command.
func (it *FormatController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("write", "w", false, "Rewrite the manifest in place")
	cmd.Flags().Bool("check", false, "Exit non-zero when the manifest is not canonical")
	cmd.Flags().Bool("commit", false, "Rewrite and commit the manifest (implies --write)")
}
