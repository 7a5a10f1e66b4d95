package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/getlawrence/reporter/internal/commander"
	"github.com/getlawrence/reporter/internal/reporter"
)

func newRunCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run a command under a spinner activity",
		Long: `Run executes a command while a spinner activity is shown. Its combined
output is printed as a verbose message on success. On failure an error report
is printed and the command's exit status is returned.

Like every finished activity, the summary line "<id> — <elapsed> — <status>" is
printed at success level. A failed command ends with status "failed" and is
followed by the error report.

Example usage:
  reporter run npm install
  reporter run --id "build site" --dir ./site -- npm run build`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			dir, _ := cmd.Flags().GetString("dir")
			if id == "" {
				id = strings.Join(args, " ")
			}
			return runCommand(cmd.Context(), state.reporter(), state.commander, id, dir, args)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().String("id", "", "activity id (default: the command line)")
	cmd.Flags().String("dir", "", "working directory for the command")
	return cmd
}

func runCommand(ctx context.Context, r *reporter.Reporter, c commander.Commander, id, dir string, argv []string) error {
	name := argv[0]
	if _, err := c.LookPath(name); err != nil {
		r.Error(reporter.ErrorDetails{
			Type: "CommandNotFound",
			Err:  err,
			Text: fmt.Sprintf("%q is not installed or not on PATH", name),
		})
		return fmt.Errorf("command not found: %s", name)
	}

	h := r.CreateActivityContext(ctx, reporter.Activity{ID: id, Kind: reporter.KindSpinner})
	h.Update(reporter.ActivityState{StartTime: time.Now(), Status: "running"})

	output, err := c.Run(ctx, name, argv[1:], dir)
	if err != nil {
		h.Update(reporter.ActivityState{Status: "failed"})
		h.Done()
		r.Error(reporter.ErrorDetails{
			Type: "CommandFailed",
			Err:  err,
			Text: strings.TrimSpace(output),
		})
		return fmt.Errorf("%s failed: %w", name, err)
	}

	h.Done()
	if out := strings.TrimSpace(output); out != "" {
		r.Verbose(out)
	}
	return nil
}
