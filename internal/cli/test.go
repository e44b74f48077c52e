package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/latepath/internal/harness"
)

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult aggregates a test run over a scenario directory.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run YAML scenarios against their layouts",
		Long: `Run YAML scenario files found under the directory.

Each scenario loads its layout directories, resolves every step in a
fresh in-memory catalog, and checks the expected paths, error codes,
and assertions.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(rootOpts, args[0], filter, cmd)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only run scenario files whose base name matches this glob")

	return cmd
}

func runTest(opts *RootOptions, scenariosDir, filter string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	files, err := findScenarioFiles(scenariosDir, filter)
	if err != nil {
		_ = formatter.Error("E002", fmt.Sprintf("failed to scan scenarios: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to scan scenarios", err)
	}
	if len(files) == 0 {
		msg := fmt.Sprintf("no scenario files found in %s", scenariosDir)
		_ = formatter.Error("E003", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	result := TestResult{Scenarios: make([]ScenarioResult, 0, len(files))}
	for _, file := range files {
		formatter.VerboseLog("Running %s", file)
		sr := runScenarioFile(file)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Scenarios = append(result.Scenarios, sr)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, sr := range result.Scenarios {
			if sr.Pass {
				fmt.Fprintf(formatter.Writer, "✓ %s\n", sr.Name)
			} else {
				fmt.Fprintf(formatter.Writer, "✗ %s\n", sr.Name)
				for _, msg := range sr.Errors {
					fmt.Fprintf(formatter.Writer, "    %s\n", msg)
				}
			}
		}
		fmt.Fprintf(formatter.Writer, "%d passed, %d failed\n", result.Passed, result.Failed)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// runScenarioFile loads and executes one scenario, folding load errors
// into the result rather than aborting the whole run.
func runScenarioFile(file string) ScenarioResult {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	scenario, err := harness.LoadScenarioWithBasePath(file, filepath.Dir(file))
	if err != nil {
		return ScenarioResult{Name: name, File: file, Errors: []string{err.Error()}}
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return ScenarioResult{Name: scenario.Name, File: file, Errors: []string{err.Error()}}
	}

	return ScenarioResult{
		Name:   scenario.Name,
		File:   file,
		Pass:   result.Pass,
		Errors: result.Errors,
	}
}

// findScenarioFiles walks dir collecting .yaml/.yml files, optionally
// filtered by a glob over the base name. Results are sorted for
// deterministic run order.
func findScenarioFiles(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			matched, err := filepath.Match(filter, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("invalid filter %q: %w", filter, err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
