package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra command metadata for a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is implemented by every CLI controller. Execute returns an
// error so that the root command can map lint failures to a non-zero
// exit status.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
