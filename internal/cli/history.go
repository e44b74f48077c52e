package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latepath/internal/catalog"
)

// HistoryResult holds the recorded resolutions for a query.
type HistoryResult struct {
	Layout       string               `json:"layout,omitempty"`
	SessionToken string               `json:"session_token,omitempty"`
	Resolutions  []catalog.Resolution `json:"resolutions"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dbPath  string
		session string
	)

	cmd := &cobra.Command{
		Use:   "history [layout]",
		Short: "Show recorded resolutions",
		Long: `Show the resolutions recorded in the catalog, in sequence order.

With a layout argument, lists every resolution of that layout. With
--session, lists every resolution recorded under that session token
instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := ""
			if len(args) > 0 {
				layout = args[0]
			}
			return runHistory(rootOpts, dbPath, layout, session, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "catalog database path (required)")
	cmd.Flags().StringVar(&session, "session", "", "list resolutions for this session token instead of a layout")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *RootOptions, dbPath, layout, session string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if layout == "" && session == "" {
		msg := "a layout argument or --session is required"
		_ = formatter.Error("E001", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	cat, err := catalog.Open(dbPath)
	if err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("failed to open catalog: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	defer cat.Close()

	var resolutions []catalog.Resolution
	if session != "" {
		resolutions, err = cat.ListSessionResolutions(cmd.Context(), session)
	} else {
		resolutions, err = cat.ListResolutions(cmd.Context(), layout)
	}
	if err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("failed to list resolutions: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to list resolutions", err)
	}

	result := HistoryResult{Layout: layout, SessionToken: session, Resolutions: resolutions}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, r := range result.Resolutions {
		fmt.Fprintf(formatter.Writer, "%d\t%s\t%s\n", r.Seq, r.Layout, r.Path)
	}
	fmt.Fprintf(formatter.Writer, "%d resolution(s)\n", len(result.Resolutions))
	return nil
}
