package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/adkdiagram/pkg/diagram/adk"
	"github.com/matzehuels/adkdiagram/pkg/errors"
)

// dotCommand creates the dot command, which prints the graph description
// without rendering it.
func (c *CLI) dotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dot",
		Short: "Print the Graphviz DOT description of the diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeDOT(c.out)
		},
	}
}

func writeDOT(w io.Writer) error {
	g, err := adk.Build(adk.DefaultFormat)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "build diagram")
	}
	return g.WriteDOT(w)
}
