package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/exec"
	"github.com/felixgeelhaar/termtutor/internal/exitcode"
	"github.com/felixgeelhaar/termtutor/internal/interpreter"
	"github.com/felixgeelhaar/termtutor/internal/session"
	"github.com/felixgeelhaar/termtutor/internal/tui"
	"github.com/felixgeelhaar/termtutor/internal/validation"
	"github.com/felixgeelhaar/termtutor/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "termtutor",
	Short: "Learn the command line by doing",
	Long: `termtutor is an interactive shell tutor. It walks you through a catalog of
tasks, runs the commands you type in a sandbox workspace and checks whether
each one did what the task asked for.

While a task is shown you can type:
  show       reveal the expected command
  explain    explain what the command does
  skip       run the expected command for you and move on
  go <n>     fast-forward to task n, replaying the tasks in between
  cd <dir>   change directory inside the workspace
  reset      wipe the workspace and start again from task 1
  exit       save progress and quit

Anything else runs as a shell command.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTutor,
}

// ExecuteContext runs the root command with ctx, cancelled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Long += "\n\n" + exitCodeHelp()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.termtutor/config.yaml)")
	pf.String("catalog", "", "task catalog file (.yaml or .json); empty uses the built-in course")
	pf.String("workspace", "", "directory the lesson commands run in (default \"termtutor-workspace\")")
	pf.String("log-level", "", "diagnostic log level: debug, info, warn, error")
	pf.Bool("no-color", false, "disable colored output")
}

// exitCodeHelp lists the process exit codes for the help text.
func exitCodeHelp() string {
	codes := []int{
		exitcode.Success,
		exitcode.GeneralError,
		exitcode.UsageError,
		exitcode.CatalogError,
		exitcode.WorkspaceError,
		exitcode.ConfigError,
		exitcode.Interrupted,
	}

	var b strings.Builder
	b.WriteString("Exit codes:")
	for _, code := range codes {
		fmt.Fprintf(&b, "\n  %-4d %s", code, exitcode.GetExitCodeDescription(code))
	}
	return b.String()
}

func runTutor(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	cat, err := cc.LoadCatalog()
	if err != nil {
		return err
	}

	ws, err := workspace.New(cc.WorkspacePath(), cc.Logger)
	if err != nil {
		return err
	}
	created, err := ws.Ensure()
	if err != nil {
		return err
	}

	printer := cc.Printer(cmd.OutOrStdout())
	if created {
		printer.Success("Created workspace %s", ws.Root())
	} else {
		printer.Info("Found existing workspace %s", ws.Root())
	}

	store := checkpoint.NewStore(cc.ProgressPath(), cat.Fingerprint, cc.Logger)
	sess := session.New(cat, store, ws.Root(), cc.Logger)

	runner := exec.NewRunner(cc.Config.Shell, sess.Logger())
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	in := interpreter.New(
		sess,
		runner,
		validation.NewEngine(runner, sess.Logger()),
		ws,
		lineReader(cmd, cc, sess),
		printer,
		interpreter.Options{Hints: cc.Config.Hints},
	)
	return in.Run(cmd.Context())
}

// lineReader picks the tab-completing editor on a terminal and a plain
// scanner for pipes and tests.
func lineReader(cmd *cobra.Command, cc *CommandContext, sess *session.Session) tui.LineReader {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin && tui.IsInteractive() {
		complete := func(line string) []string {
			return workspace.CompleteLine(sess.Dir(), line)
		}
		return tui.NewEditorReader(in, cmd.OutOrStdout(), complete, cc.Styles)
	}
	return tui.NewScannerReader(in, cmd.OutOrStdout(), cc.Styles)
}
