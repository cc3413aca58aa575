package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/deploykit/internal/catalog"
)

// KindsOptions holds flags for the kinds command.
type KindsOptions struct {
	*RootOptions
	Schemas string
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KindsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the resource kinds known to the catalog",
		Long: `List every resource kind with its folder, root write class and
identifier key. Kinds declared in a CUE schemas directory are included.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKinds(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schemas, "schemas", "", "directory of CUE schema definitions")

	return cmd
}

func runKinds(opts *KindsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := LoadCatalog(opts.Schemas)
	if err != nil {
		return commandError(formatter, err)
	}

	kinds := cat.Kinds()
	if formatter.Format == "json" {
		return formatter.Success(kinds)
	}
	return writeKinds(formatter, kinds)
}

func writeKinds(f *OutputFormatter, kinds []catalog.Kind) error {
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tFOLDER\tROOT\tIDENTIFIER")
	for _, k := range kinds {
		id := k.IdentifierKey
		if k.DataSetLinked {
			id += " (data set)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Name, k.Folder, k.Root, id)
	}
	return tw.Flush()
}
