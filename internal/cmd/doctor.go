package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/exec"
	"github.com/felixgeelhaar/termtutor/internal/health"
	"github.com/felixgeelhaar/termtutor/internal/ux"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a session can start",
	Long: `Run environment checks without starting a session:

  shell      the configured shell starts and runs a command
  workspace  the workspace exists or can be created, and is writable
  catalog    the task catalog loads and validates
  progress   the saved progress fits the catalog

Exits non-zero when any check is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringP("format", "f", ux.FormatText, "output format: text, json, yaml")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case ux.FormatText, ux.FormatJSON, ux.FormatYAML:
	default:
		return ValidationError("--format", format, "text, json, yaml")
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	manager := health.NewManager()
	manager.AddChecker(health.NewShellChecker(exec.NewRunner(cc.Config.Shell, cc.Logger), cc.Config.Shell))
	manager.AddChecker(health.NewWorkspaceChecker(cc.WorkspacePath()))
	manager.AddChecker(health.NewCatalogChecker(cc.Config.Catalog))
	// The progress record can only be judged against a catalog that loads.
	if cat, err := cc.LoadCatalog(); err == nil {
		store := checkpoint.NewStore(cc.ProgressPath(), cat.Fingerprint, cc.Logger)
		manager.AddChecker(health.NewProgressChecker(store, cat.Fingerprint, cat.Len()))
	}

	report := ux.NewDoctorReport(manager.Check(cmd.Context()))

	formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: cc.NoColor,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(report); err != nil {
		return err
	}

	if report.Overall == health.StatusUnhealthy {
		var failed int
		for _, c := range report.Checks {
			if c.Result.Status == health.StatusUnhealthy {
				failed++
			}
		}
		return fmt.Errorf("%d environment check(s) failed", failed)
	}
	return nil
}
