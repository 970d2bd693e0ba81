package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/diagram/adk"
	"github.com/matzehuels/adkdiagram/pkg/errors"
)

// describeCommand creates the describe command, which summarizes the nodes
// and edges of the diagram as tables.
func (c *CLI) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the diagram's nodes and edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := adk.Build(adk.DefaultFormat)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGraph, err, "build diagram")
			}
			describe(c.out, g)
			return nil
		},
	}
}

func describe(w io.Writer, g *diagram.Graph) {
	printTitle(w, g.Comment())
	printStats(w, g.NodeCount(), g.EdgeCount())
	fmt.Fprintln(w)

	attrs := g.GraphAttrs()
	printKeyValue(w, "layout", attrs["rankdir"]+", "+attrs["splines"]+" edges")
	printKeyValue(w, "background", attrs["bgcolor"])
	printKeyValue(w, "format", string(g.Format()))
	fmt.Fprintln(w)

	nodeRows := make([][]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nodeRows = append(nodeRows, []string{n.ID, oneLine(n.Label), string(n.Shape), n.FillColor, n.Color})
	}
	fmt.Fprintln(w, newTable("ID", "Label", "Shape", "Fill", "Border").Rows(nodeRows...).Render())

	back := make(map[diagram.Edge]bool)
	for _, e := range g.BackEdges() {
		back[e] = true
	}

	edgeRows := make([][]string, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		style := e.Style
		if style == "" {
			style = "solid"
		}
		if back[e] {
			style += " (return)"
		}
		edgeRows = append(edgeRows, []string{e.From + " " + iconArrow + " " + e.To, e.Label, e.Color, style})
	}
	fmt.Fprintln(w, newTable("Edge", "Label", "Color", "Style").Rows(edgeRows...).Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
