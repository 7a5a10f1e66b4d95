package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getlawrence/reporter/internal/reporter"
)

func newErrorCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "error <text...>",
		Short: "Print a structured error report",
		Long: `Error prints an error report made of an optional header (id, type and
message), the description text, the file location relative to the working
directory and a link to the documentation.

Example usage:
  reporter error --id 85901 --type GraphQLError --message "Cannot query field" \
    --file src/pages/index.js --line 12 --column 5 \
    "There was an error in your GraphQL query"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := errorDetailsFromFlags(cmd)
			if err != nil {
				return err
			}
			details.Text = strings.Join(args, " ")
			state.reporter().Error(details)
			return nil
		},
	}

	cmd.Flags().String("id", "", "error identifier shown as #<id>")
	cmd.Flags().String("type", "", "error type, e.g. GraphQLError")
	cmd.Flags().String("message", "", "underlying error message")
	cmd.Flags().String("file", "", "file the error refers to")
	cmd.Flags().Int("line", 0, "line in --file (1-based)")
	cmd.Flags().Int("column", 0, "column in --file (1-based, needs --line)")
	cmd.Flags().String("docs-url", "", "documentation link for this error")
	return cmd
}

func errorDetailsFromFlags(cmd *cobra.Command) (reporter.ErrorDetails, error) {
	flags := cmd.Flags()
	var d reporter.ErrorDetails
	d.ID, _ = flags.GetString("id")
	d.Type, _ = flags.GetString("type")
	d.FilePath, _ = flags.GetString("file")
	d.DocsURL, _ = flags.GetString("docs-url")

	if msg, _ := flags.GetString("message"); msg != "" {
		d.Err = errors.New(msg)
	}

	line, _ := flags.GetInt("line")
	column, _ := flags.GetInt("column")
	if line < 0 || column < 0 {
		return d, errors.New("--line and --column must not be negative")
	}
	if line > 0 || column > 0 {
		d.Location = &reporter.Location{Start: reporter.Position{Line: line, Column: column}}
	}
	return d, nil
}
