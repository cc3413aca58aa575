package params

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Render writes one line per spec in Compare order, followed by a
// completeness note when the set is incomplete.
//
//	properties            {dict}  required
//	properties.nullable   {bool}  optional  nullable
func Render(w io.Writer, set *SpecSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, spec := range set.Specs() {
		req := "optional"
		if spec.Required {
			req = "required"
		}
		null := ""
		if spec.Nullable {
			null = "nullable"
		}
		line := fmt.Sprintf("%s\t{%s}\t%s\t%s", spec.Path, strings.Join(spec.Types, ","), req, null)
		if _, err := fmt.Fprintln(tw, strings.TrimRight(line, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !set.Complete {
		if _, err := fmt.Fprintln(w, "# incomplete: some parameters have no recoverable type hint"); err != nil {
			return err
		}
	}
	return nil
}
