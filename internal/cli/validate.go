package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/deploykit/internal/catalog"
	"github.com/roach88/deploykit/internal/params"
	"github.com/roach88/deploykit/internal/store"
	"github.com/roach88/deploykit/internal/validate"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Schemas string
	Record  string
	Watch   bool

	// LedgerOptions are passed to store.Open (for testing).
	LedgerOptions []store.Option
}

// ValidateResult is the outcome of validating a directory.
type ValidateResult struct {
	Dir      string               `json:"dir"`
	Files    int                  `json:"files"`
	Skipped  []string             `json:"skipped,omitempty"`
	Warnings validate.WarningList `json:"warnings"`
	RunID    string               `json:"run_id,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Validate resource YAML files against their kind's schema",
		Long: `Validate every "<name>.<Kind>.yaml" file under dir against the parameter
spec set of its kind, reporting case typos, unused and missing parameters
and missing data sets. config.<env>.yaml files are checked for unfilled
<template> variables. Files of unknown kinds are skipped.

Exit code 1 means warnings were found.

Example:
  deploykit validate ./modules
  deploykit validate ./modules --schemas ./defs --record ./ledger.db
  deploykit validate ./modules --watch`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "directory of CUE schema definitions")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record the run in this SQLite ledger")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "revalidate whenever a file changes")

	return cmd
}

func runValidate(opts *ValidateOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if !opts.Watch {
		return validateOnce(cmd.Context(), opts, dir, formatter)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watched := []string{dir}
	if opts.Schemas != "" {
		watched = append(watched, opts.Schemas)
	}
	for {
		err := validateOnce(ctx, opts, dir, formatter)
		if GetExitCode(err) == ExitCommandError && ctx.Err() == nil {
			slog.Warn("validation pass failed", "error", err)
		}

		changed, cancel, werr := UntilModified(ctx, watched...)
		if werr != nil {
			return commandError(formatter, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("watch %s: %v", dir, werr)})
		}
		<-changed.Done()
		cause := context.Cause(changed)
		cancel()
		if ctx.Err() != nil {
			slog.Info("watch stopped")
			return nil
		}
		slog.Info("revalidating", "cause", cause)
	}
}

func validateOnce(ctx context.Context, opts *ValidateOptions, dir string, formatter *OutputFormatter) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := checkDir(dir, "resource"); err != nil {
		return commandError(formatter, err)
	}

	cat, err := LoadCatalog(opts.Schemas)
	if err != nil {
		return commandError(formatter, err)
	}

	result, err := NewValidator(cat).ValidateDir(ctx, dir)
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.VerboseLog("Validated %d file(s) in %s, skipped %d", result.Files, dir, len(result.Skipped))

	if opts.Record != "" {
		run, err := recordRun(ctx, opts, result)
		if err != nil {
			return commandError(formatter, &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("record run: %v", err)})
		}
		result.RunID = run.ID
	}

	return outputValidateResult(formatter, result)
}

func recordRun(ctx context.Context, opts *ValidateOptions, result *ValidateResult) (store.Run, error) {
	st, err := store.Open(opts.Record, opts.LedgerOptions...)
	if err != nil {
		return store.Run{}, err
	}
	defer st.Close()

	return st.RecordRun(ctx, store.RunInput{
		Dir:        result.Dir,
		SchemasDir: opts.Schemas,
		Files:      result.Files,
		Warnings:   result.Warnings,
	})
}

// Validator checks resource files against the kinds of a catalog.
type Validator struct {
	catalog *catalog.Catalog
	cache   *params.Cache
}

// NewValidator creates a validator with a spec cache over cat's registry.
func NewValidator(cat *catalog.Catalog) *Validator {
	return &Validator{
		catalog: cat,
		cache:   params.NewCache(params.NewBuilder(cat.Registry())),
	}
}

// ValidateDir validates every YAML file under dir. Warning file names are
// relative to dir and the list is sorted.
func (v *Validator) ValidateDir(ctx context.Context, dir string) (*ValidateResult, error) {
	files, err := FindResourceFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}

	result := &ValidateResult{Dir: dir, Warnings: validate.WarningList{}}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		warnings, ok, err := v.ValidateFile(path, rel)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Debug("skipping file of unknown kind", "file", rel)
			result.Skipped = append(result.Skipped, rel)
			continue
		}
		slog.Debug("validated file", "file", rel, "warnings", len(warnings))
		result.Files++
		result.Warnings = append(result.Warnings, warnings...)
	}
	result.Warnings.Sort()
	return result, nil
}

// ValidateFile validates one file, reporting warnings under the name rel.
// The boolean is false when the file is neither a config file nor of a
// known kind.
func (v *Validator) ValidateFile(path, rel string) (validate.WarningList, bool, error) {
	kind, isKind := v.catalog.KindForFile(path)
	config := !isKind && isConfigFile(path)
	if !isKind && !config {
		return nil, false, nil
	}

	docs, err := decodeYAML(path)
	if err != nil {
		return nil, true, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: %v", rel, err)}
	}

	var out validate.WarningList
	if config {
		for _, doc := range docs {
			if m, ok := doc.(map[string]any); ok {
				out = append(out, validate.TemplateVariables(m, rel)...)
			}
		}
		return out, true, nil
	}

	root, _ := v.catalog.Root(kind)
	spec, err := v.cache.Get(root)
	if err != nil {
		return nil, true, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}
	for _, doc := range docs {
		out = append(out, validate.Resource(validate.ReplaceDataSetExternalID(doc), spec, rel)...)
		if kind.DataSetLinked {
			out = append(out, validate.DataSet(doc, spec, rel, kind.IdentifierKey, kind.Name)...)
		}
	}
	return out, true, nil
}

// decodeYAML decodes every document of a YAML stream, skipping empty ones.
func decodeYAML(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []any
	dec := yaml.NewDecoder(f)
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func outputValidateResult(f *OutputFormatter, result *ValidateResult) error {
	n := len(result.Warnings)
	if f.Format == "json" {
		if n == 0 {
			return f.Success(result)
		}
		failure := CLIError{
			Code:    result.Warnings[0].Code,
			Message: fmt.Sprintf("%d warning(s) found", n),
			Summary: summarize(result.Warnings),
		}
		if err := f.Failure(failure, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation found %d warning(s)", n))
	}

	if n == 0 {
		fmt.Fprintf(f.Writer, "✓ %d file(s) valid\n", result.Files)
	} else {
		groups := result.Warnings.Group()
		fmt.Fprintf(f.Writer, "✗ %d warning(s) in %d of %d file(s)\n", n, len(groups), result.Files)
		for _, g := range groups {
			fmt.Fprintf(f.Writer, "\n%s\n", g.File)
			for _, w := range g.Warnings {
				fmt.Fprintf(f.Writer, "  %s\n", w)
			}
		}
	}
	if result.RunID != "" {
		fmt.Fprintf(f.Writer, "\nRecorded run %s\n", result.RunID)
	}

	if n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("validation found %d warning(s)", n))
	}
	return nil
}
