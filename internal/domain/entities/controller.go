package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra metadata a controller is mounted with.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entry point backed by a domain command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}

// FlaggedController is implemented by controllers that register their own flags.
type FlaggedController interface {
	Controller
	AddFlags(cmd *cobra.Command)
}
