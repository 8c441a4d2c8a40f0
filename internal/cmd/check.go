package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/config"
	"github.com/felixgeelhaar/termtutor/internal/exec"
	"github.com/felixgeelhaar/termtutor/internal/interpreter"
	"github.com/felixgeelhaar/termtutor/internal/progress"
	"github.com/felixgeelhaar/termtutor/internal/session"
	"github.com/felixgeelhaar/termtutor/internal/ux"
	"github.com/felixgeelhaar/termtutor/internal/validation"
	"github.com/felixgeelhaar/termtutor/internal/workspace"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every task accepts its own solution",
	Long: `Replay the whole catalog in a scratch directory: every task's expected
command is run and judged exactly as a learner's attempt would be. The
command fails when any task rejects its own solution, which usually means
the outputIncludes or checkCommand of that task is wrong.

Examples:
  # Check the built-in course
  termtutor check

  # Check a custom catalog and show each command's output
  termtutor check --catalog lessons.yaml --verbose
`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolP("verbose", "v", false, "show the output of every command")
	checkCmd.Flags().Bool("keep", false, "keep the scratch directory after the check")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	keep, _ := cmd.Flags().GetBool("keep")

	cat, err := cc.LoadCatalog()
	if err != nil {
		return err
	}

	root, err := os.MkdirTemp("", "termtutor-check-")
	if err != nil {
		return ux.FormatError(err, "failed to create scratch directory")
	}
	out := cmd.OutOrStdout()
	if keep {
		fmt.Fprintf(out, "Scratch directory: %s\n", root)
	} else {
		defer os.RemoveAll(root)
	}

	ws, err := workspace.New(filepath.Join(root, "workspace"), cc.Logger)
	if err != nil {
		return err
	}
	if _, err := ws.Ensure(); err != nil {
		return err
	}

	store := checkpoint.NewStore(filepath.Join(root, config.DefaultProgressFile), cat.Fingerprint, cc.Logger)
	sess := session.New(cat, store, ws.Root(), cc.Logger)

	runner := exec.NewRunner(cc.Config.Shell, sess.Logger())
	engine := validation.NewEngine(runner, sess.Logger())
	reporter := progress.NewReporter(out, cat.Len())

	for !sess.Completed() {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		i := sess.Index()
		task, _ := sess.Current()
		status, checkErr := checkTask(cmd, sess, runner, engine, task, verbose)
		reporter.Update(i, task.Description, status, checkErr)

		if _, err := sess.Advance(); err != nil && !stderrors.Is(err, session.ErrCompleted) {
			return err
		}
	}

	reporter.PrintSummary()
	if failed := reporter.Failed(); failed > 0 {
		return CheckFailedError(failed, cat.Len())
	}
	return nil
}

// checkTask runs task's expected command in the session directory and
// judges it like a learner attempt.
func checkTask(
	cmd *cobra.Command,
	sess *session.Session,
	runner exec.Executor,
	engine *validation.Engine,
	task catalog.Task,
	verbose bool,
) (progress.Status, error) {
	if dir, ok := interpreter.ChdirTarget(task.ExpectedCommand); ok {
		if err := sess.Chdir(dir); err != nil {
			return progress.StatusFailed, err
		}
		return progress.StatusPassed, nil
	}

	res, err := runner.Run(cmd.Context(), exec.Request{
		Command: task.ExpectedCommand,
		Dir:     sess.Dir(),
		Mode:    exec.ModeCapture,
	})
	if err != nil {
		return progress.StatusFailed, err
	}

	if verbose {
		sw := progress.NewStreamWriter(cmd.OutOrStdout(), "  │")
		_, _ = sw.Write([]byte(res.Stdout))
		_, _ = sw.Write([]byte(res.Stderr))
		_ = sw.Flush()
	}

	verdict := engine.Judge(cmd.Context(), task, task.ExpectedCommand, sess.Dir(), res)
	if !verdict.Accepted {
		return progress.StatusFailed, stderrors.New(string(verdict.Reason))
	}
	return progress.StatusPassed, nil
}
