package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/tui"
	"github.com/felixgeelhaar/termtutor/internal/workspace"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the workspace and saved progress",
	Long: `Remove the workspace directory and the progress record so the next
session starts from task 1 in an empty sandbox.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	printer := cc.Printer(cmd.OutOrStdout())

	ws, err := workspace.New(cc.WorkspacePath(), cc.Logger)
	if err != nil {
		return err
	}
	store := checkpoint.NewStore(cc.ProgressPath(), "", cc.Logger)

	if !ws.Exists() && !store.Exists() {
		printer.Info("Nothing to clean.")
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !tui.ShouldPrompt() {
			return ConfirmationRequiredError("delete the workspace")
		}
		ok, err := tui.PromptForConfirmation(
			fmt.Sprintf("Delete %s and all saved progress?", ws.Root()), false)
		if err != nil {
			return err
		}
		if !ok {
			printer.Info("Aborted.")
			return nil
		}
	}

	if ws.Exists() {
		if err := ws.Remove(); err != nil {
			return err
		}
		printer.Success("Removed workspace %s", ws.Root())
	}
	if store.Exists() {
		if err := store.Clear(); err != nil {
			return err
		}
		printer.Success("Removed progress record %s", store.Path())
	}
	return nil
}
