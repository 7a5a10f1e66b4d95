package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getlawrence/reporter/internal/commander"
	"github.com/getlawrence/reporter/internal/config"
	"github.com/getlawrence/reporter/internal/reporter"
)

// appState carries what every command needs. app is built by the root
// command's pre-run hook once flags are parsed.
type appState struct {
	stdout    io.Writer
	stderr    io.Writer
	commander commander.Commander
	app       *AppConfig
}

func (s *appState) reporter() *reporter.Reporter {
	return s.app.Reporter
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the running command; open activities still finish and
// metrics and trace files are still written.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := &appState{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		commander: commander.NewReal(),
	}
	err := state.execute(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// execute runs one command line and releases whatever the run opened, even
// when the command fails.
func (s *appState) execute(ctx context.Context, args []string) (err error) {
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(s.stdout)
	root.SetErr(s.stderr)

	defer func() {
		if s.app != nil {
			err = errors.Join(err, s.app.Close())
			s.app = nil
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd(state *appState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reporter",
		Short: "Terminal reporter for build tooling",
		Long: `Reporter prints leveled messages, structured error reports and
activity progress (spinners and progress bars) for long running build steps.

Output can be plain text, JSON lines for log collectors, or a live terminal view.
Verbose messages are shown with --verbose or when gatsby_log_level=verbose.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			app, err := NewAppConfig(cmd.Context(), cfg, state.stdout, state.stderr)
			if err != nil {
				return err
			}
			state.app = app
			return nil
		},
	}
	rootCmd.SetVersionTemplate(versionTemplate())

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (text, json, live)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("config", "", "config file (default: .reporter.yaml in the current or home directory)")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().String("trace-file", "", "write activity spans as JSON to this file")

	rootCmd.AddCommand(
		newLogCmd(state),
		newErrorCmd(state),
		newActivityCmd(state),
		newRunCmd(state),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("verbose") {
		cfg.Output.Verbose, _ = flags.GetBool("verbose")
	}
	if output, _ := flags.GetString("output"); output != "" {
		cfg.Output.Format = output
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		cfg.Output.Color = false
	}
	if file, _ := flags.GetString("metrics-file"); file != "" {
		cfg.Metrics.File = file
	}
	if file, _ := flags.GetString("trace-file"); file != "" {
		cfg.Tracing.File = file
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
