package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/deploykit/internal/params"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	Snake   bool
	Schemas string
}

// SpecView is the JSON form of one parameter spec.
type SpecView struct {
	Path     string   `json:"path"`
	Types    []string `json:"types"`
	Required bool     `json:"required"`
	Nullable bool     `json:"nullable"`
}

// SchemaResult is the JSON payload of the schema command.
type SchemaResult struct {
	Kind       string     `json:"kind"`
	Root       string     `json:"root"`
	Complete   bool       `json:"complete"`
	Parameters []SpecView `json:"parameters"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema <kind>",
		Short: "Print the parameter spec set of a resource kind",
		Long: `Derive and print the parameter spec set of a resource kind: one line per
reachable parameter path with its accepted types, requiredness and
nullability. Paths are camelCase as written in YAML unless --snake is set.

Example:
  deploykit schema Container
  deploykit schema View --snake --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Snake, "snake", false, "print constructor (snake_case) parameter names")
	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "directory of CUE schema definitions")

	return cmd
}

func runSchema(opts *SchemaOptions, kindName string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := LoadCatalog(opts.Schemas)
	if err != nil {
		return commandError(formatter, err)
	}

	kind, ok := cat.Kind(kindName)
	if !ok {
		return commandError(formatter, &LoadError{
			Code:    ErrCodeUnknownKind,
			Message: fmt.Sprintf("unknown kind %q", kindName),
		})
	}
	root, _ := cat.Root(kind)

	var set *params.SpecSet
	if opts.Snake {
		set, err = params.NewBuilder(cat.Registry()).Build(root)
	} else {
		set, err = params.NewCache(params.NewBuilder(cat.Registry())).Get(root)
	}
	if err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()})
	}
	formatter.VerboseLog("Derived %d parameter spec(s) for %s from %s", set.Len(), kind.Name, root.Name)

	if formatter.Format == "json" {
		return formatter.Success(schemaResult(kind.Name, root.Name, set))
	}

	fmt.Fprintf(formatter.Writer, "# %s (%s)\n", kind.Name, root.Name)
	return params.Render(formatter.Writer, set)
}

func schemaResult(kind, root string, set *params.SpecSet) SchemaResult {
	res := SchemaResult{Kind: kind, Root: root, Complete: set.Complete, Parameters: []SpecView{}}
	for _, spec := range set.Specs() {
		res.Parameters = append(res.Parameters, SpecView{
			Path:     spec.Path.String(),
			Types:    spec.Types,
			Required: spec.Required,
			Nullable: spec.Nullable,
		})
	}
	return res
}
