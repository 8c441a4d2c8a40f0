package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/ux"
	"github.com/felixgeelhaar/termtutor/internal/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show saved progress",
	Long: `Display how far you got through the task catalog without starting a session.

Examples:
  # Display status in default text format
  termtutor status

  # Output as JSON for scripting
  termtutor status --format json

  # Output as YAML
  termtutor status --format yaml
`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringP("format", "f", ux.FormatText, "output format: text, json, yaml")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	report, err := buildStatusReport(cc)
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: cc.NoColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(report)
}

func buildStatusReport(cc *CommandContext) (ux.StatusReport, error) {
	cat, err := cc.LoadCatalog()
	if err != nil {
		return ux.StatusReport{}, err
	}

	store := checkpoint.NewStore(cc.ProgressPath(), cat.Fingerprint, cc.Logger)
	rec, saved := store.Read()
	index := store.Load(cat.Len())
	task, _ := cat.Task(index)

	ws, err := workspace.New(cc.WorkspacePath(), cc.Logger)
	if err != nil {
		return ux.StatusReport{}, err
	}

	report := ux.StatusReport{
		Catalog:         cat.Source,
		Fingerprint:     cat.Fingerprint,
		TaskCount:       cat.Len(),
		CurrentTask:     index + 1,
		CurrentTitle:    task.Description,
		Saved:           saved,
		FingerprintOK:   !saved || rec.CatalogFingerprint == "" || rec.CatalogFingerprint == cat.Fingerprint,
		ProgressFile:    store.Path(),
		Workspace:       ws.Root(),
		WorkspaceExists: ws.Exists(),
	}
	if saved && !rec.UpdatedAt.IsZero() {
		updated := rec.UpdatedAt
		report.UpdatedAt = &updated
	}
	return report, nil
}
