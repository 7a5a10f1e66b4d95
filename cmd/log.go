package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var logLevels = []string{"success", "info", "warn", "verbose", "log"}

func newLogCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "log <level> <message...>",
		Short: "Print a message at the given level",
		Long: `Log prints a single message through the reporter.

Levels: success, info, warn, verbose, log. Verbose messages are dropped
unless verbose output is enabled.

Example usage:
  reporter log info "Loaded 12 plugins"
  reporter log warn deprecated option "pathPrefix"
  reporter -v log verbose "resolved theme in 3 ms"`,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: logLevels,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := state.reporter()
			emit := map[string]func(string){
				"success": r.Success,
				"info":    r.Info,
				"warn":    r.Warn,
				"verbose": r.Verbose,
				"log":     r.Log,
			}
			level := args[0]
			fn, ok := emit[level]
			if !ok {
				return fmt.Errorf("unknown level %q (want one of %s)", level, strings.Join(logLevels, ", "))
			}
			fn(strings.Join(args[1:], " "))
			return nil
		},
	}
}

