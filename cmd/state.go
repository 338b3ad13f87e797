package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"srtbadge/config"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show or clear the remembered paths",
	Args:  cobra.NoArgs,
	RunE:  runStateCommand,
}

var clearState bool

func init() {
	stateCmd.Flags().BoolVar(&clearState, "clear", false, "Forget the remembered paths")
}

func runStateCommand(cmd *cobra.Command, args []string) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if clearState {
		if err := config.ClearState(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %s\n", path)
		return nil
	}

	state, err := config.LoadState(path)
	if err != nil {
		return err
	}
	if state.Empty() {
		fmt.Fprintf(out, "Nothing remembered yet (%s)\n", path)
		return nil
	}
	fmt.Fprintf(out, "badge:   %s\ncues:    %s\noutput:  %s\nupdated: %s\n",
		state.BadgePath, state.CuePath, state.OutputPath, state.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
