package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/latepath/internal/catalog"
	"github.com/roach88/latepath/internal/compiler"
	"github.com/roach88/latepath/internal/expr"
)

// ResolveResult is the output of a successful resolution.
type ResolveResult struct {
	Layout       string        `json:"layout"`
	Path         string        `json:"path"`
	Bindings     expr.Bindings `json:"bindings"`
	ResolutionID string        `json:"resolution_id,omitempty"`
	SessionToken string        `json:"session_token,omitempty"`
	Seq          int64         `json:"seq,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		bindFlags []string
		rebase    string
		dbPath    string
		session   string
	)

	cmd := &cobra.Command{
		Use:   "resolve <layouts-dir> <layout>",
		Short: "Resolve a layout against bindings",
		Long: `Resolve a layout's path expression against concrete bindings.

Substitutes the given bindings into the layout's expression tree and
prints the resolved path. With --rebase the layout's declared base is
replaced before resolving. With --db the resolution is recorded in the
catalog under a session token.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], args[1], bindFlags, rebase, dbPath, session, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&bindFlags, "bind", nil, "parameter binding as name=value (repeatable)")
	cmd.Flags().StringVar(&rebase, "rebase", "", "replace the layout's base with this path")
	cmd.Flags().StringVar(&dbPath, "db", "", "catalog database path for recording the resolution")
	cmd.Flags().StringVar(&session, "session", "", "session token for the recorded resolution (default: generated)")

	return cmd
}

func runResolve(opts *RootOptions, layoutsDir, layoutName string, bindFlags []string, rebase, dbPath, session string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	bindings, err := parseBindings(bindFlags)
	if err != nil {
		_ = formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid --bind flag", err)
	}

	layout, err := loadLayout(formatter, layoutsDir, layoutName)
	if err != nil {
		return err
	}

	path, err := resolveLayout(layout, bindings, rebase)
	if err != nil {
		code := "E001"
		var exprErr *expr.Error
		if errors.As(err, &exprErr) {
			code = string(exprErr.Code)
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "resolution failed", err)
	}

	result := ResolveResult{Layout: layoutName, Path: path, Bindings: bindings}

	if dbPath != "" {
		if session == "" {
			session = catalog.UUIDv7Generator{}.Generate()
		}
		res, err := recordResolution(cmd, dbPath, session, layout, bindings, path)
		if err != nil {
			_ = formatter.Error("E001", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record resolution", err)
		}
		result.ResolutionID = res.ID
		result.SessionToken = res.SessionToken
		result.Seq = res.Seq
		formatter.VerboseLog("Recorded resolution %s (seq %d)", res.ID, res.Seq)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, result.Path)
	return nil
}

// resolveLayout builds and resolves the layout, optionally rebased onto a
// literal base path.
func resolveLayout(layout *compiler.Layout, bindings expr.Bindings, rebase string) (string, error) {
	if rebase != "" {
		rel, err := layout.BuildRelative()
		if err != nil {
			return "", err
		}
		return rel.Rebase(expr.NewLiteral(rebase)).Resolve(bindings)
	}

	e, err := layout.Build()
	if err != nil {
		return "", err
	}
	return expr.Resolve(e, bindings)
}

// recordResolution persists both the layout and the resolution so that
// history queries can replay exactly what was resolved.
func recordResolution(cmd *cobra.Command, dbPath, session string, layout *compiler.Layout, bindings expr.Bindings, path string) (catalog.Resolution, error) {
	cat, err := catalog.Open(dbPath)
	if err != nil {
		return catalog.Resolution{}, err
	}
	defer cat.Close()

	ctx := cmd.Context()
	if err := cat.SaveLayout(ctx, layout); err != nil {
		return catalog.Resolution{}, err
	}
	return cat.RecordResolution(ctx, session, layout.Name, bindings, path)
}

// parseBindings converts repeated name=value flags into typed bindings.
// Values made purely of decimal digits bind as integers; everything else
// binds as a string.
func parseBindings(pairs []string) (expr.Bindings, error) {
	bindings := expr.Bindings{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("binding %q is not in name=value form", pair)
		}
		if name == "" {
			return nil, fmt.Errorf("binding %q has an empty name", pair)
		}
		if n, isInt := parseDecimal(value); isInt {
			bindings[name] = expr.NewInt(n)
		} else {
			bindings[name] = expr.NewString(value)
		}
	}
	return bindings, nil
}

func parseDecimal(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int64(r-'0')
	}
	return n, true
}
