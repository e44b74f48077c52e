package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latepath/internal/compiler"
	"github.com/roach88/latepath/internal/expr"
)

// ParamsResult lists the parameters a layout needs before it can resolve.
type ParamsResult struct {
	Layout string   `json:"layout"`
	Params []string `json:"params"`
}

// NewParamsCommand creates the params command.
func NewParamsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params <layouts-dir> <layout>",
		Short: "Show the parameters a layout requires",
		Long: `Show the set of parameters a layout requires before it can resolve.

Builds the layout's path expression and reports every parameter name it
references, sorted. Bind all of them to resolve the layout.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runParams(opts *RootOptions, layoutsDir, layoutName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	layout, err := loadLayout(formatter, layoutsDir, layoutName)
	if err != nil {
		return err
	}

	e, err := layout.Build()
	if err != nil {
		_ = formatter.Error("E006", err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to build layout", err)
	}

	result := ParamsResult{Layout: layoutName, Params: expr.RequiredParams(e).Names()}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, p := range result.Params {
		fmt.Fprintln(formatter.Writer, p)
	}
	return nil
}

// loadLayout loads a layout directory and picks out one layout by name,
// emitting formatter output and an ExitError on failure.
func loadLayout(formatter *OutputFormatter, layoutsDir, layoutName string) (*compiler.Layout, error) {
	loadResult, loadErrors := compiler.LoadDir(layoutsDir, compiler.LoadModeFailFast)
	if len(loadErrors) > 0 {
		var loadErr *compiler.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return nil, NewExitError(ExitCommandError, loadErrors[0].Error())
		}
		_ = formatter.Error(compiler.ErrCodeGeneric, loadErrors[0].Error(), nil)
		return nil, NewExitError(ExitCommandError, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, layoutsDir)

	layout := loadResult.Layout(layoutName)
	if layout == nil {
		msg := fmt.Sprintf("layout %q not found in %s", layoutName, layoutsDir)
		_ = formatter.Error(compiler.ErrCodeNotFound, msg, nil)
		return nil, NewExitError(ExitCommandError, msg)
	}
	return layout, nil
}
