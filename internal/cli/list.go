package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latepath/internal/catalog"
	"github.com/roach88/latepath/internal/expr"
)

// LayoutSummary is one row of list output.
type LayoutSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Params      int    `json:"params"`
}

// ListResult holds the layouts stored in a catalog.
type ListResult struct {
	Layouts []LayoutSummary `json:"layouts"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the layouts saved in a catalog",
		Long: `List every layout saved in the catalog, ordered by name.

Layouts are saved when resolutions are recorded with --db, so the list
reflects what the catalog's history can be queried about.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "catalog database path (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runList(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := catalog.Open(dbPath)
	if err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("failed to open catalog: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	defer cat.Close()

	layouts, err := cat.ListLayouts(cmd.Context())
	if err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("failed to list layouts: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to list layouts", err)
	}

	result := ListResult{Layouts: make([]LayoutSummary, 0, len(layouts))}
	for i := range layouts {
		layout := &layouts[i]
		summary := LayoutSummary{Name: layout.Name, Description: layout.Description}
		if e, err := layout.Build(); err == nil {
			summary.Params = len(expr.RequiredParams(e).Names())
		}
		result.Layouts = append(result.Layouts, summary)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, s := range result.Layouts {
		if s.Description != "" {
			fmt.Fprintf(formatter.Writer, "%s\t%s\n", s.Name, s.Description)
		} else {
			fmt.Fprintln(formatter.Writer, s.Name)
		}
	}
	fmt.Fprintf(formatter.Writer, "%d layout(s)\n", len(result.Layouts))
	return nil
}
