package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getlawrence/reporter/internal/reporter"
)

func newActivityCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity <id>",
		Short: "Show a spinner or progress bar activity",
		Long: `Activity drives one activity from start to finish.

A spinner walks through each --status in turn. A progress bar is ticked
--total times. Either way a success line with the elapsed time is printed
when the activity ends.

Example usage:
  reporter activity bootstrap --status "open db" --status "load plugins"
  reporter activity "Generating image thumbnails" --type progress --total 40 --interval 50ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			kindName, _ := flags.GetString("type")
			statuses, _ := flags.GetStringSlice("status")
			total, _ := flags.GetInt("total")
			interval, _ := flags.GetDuration("interval")

			kind := reporter.ParseActivityKind(kindName)
			if kind == reporter.KindUnrecognized {
				return fmt.Errorf("unknown activity type %q (want spinner or progress)", kindName)
			}
			if total < 0 {
				return errors.New("--total must not be negative")
			}

			return runActivity(cmd.Context(), state.reporter(), reporter.Activity{ID: args[0], Kind: kind}, statuses, total, interval)
		},
	}

	cmd.Flags().StringP("type", "t", "spinner", "activity type (spinner, progress)")
	cmd.Flags().StringSliceP("status", "s", []string{}, "status text shown by a spinner, repeatable")
	cmd.Flags().Int("total", 10, "number of steps for a progress bar")
	cmd.Flags().Duration("interval", 200*time.Millisecond, "delay between steps")
	return cmd
}

// runActivity plays the activity. The activity is finished even when ctx
// is cancelled part way through.
func runActivity(ctx context.Context, r *reporter.Reporter, a reporter.Activity, statuses []string, total int, interval time.Duration) error {
	h := r.CreateActivityContext(ctx, a)
	defer h.Done()

	h.Update(reporter.ActivityState{StartTime: time.Now()})
	switch a.Kind {
	case reporter.KindProgress:
		h.Update(reporter.ActivityState{Total: total})
		for i := 0; i < total; i++ {
			if err := sleep(ctx, interval); err != nil {
				return err
			}
			h.Update(reporter.ActivityState{Current: i + 1})
		}
	default:
		for _, status := range statuses {
			h.Update(reporter.ActivityState{Status: status})
			if err := sleep(ctx, interval); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
