// Package adk declares the fixed ADK-RAG-MCP-LLM interaction diagram.
//
// The topology and styling are authored here and nowhere else; [Build]
// populates a fresh [diagram.Graph] from the tables in one pass.
package adk

import (
	"fmt"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
)

const (
	// Comment is the title written at the top of the graph description.
	Comment = "Fancy ADK-RAG-MCP-LLM Interaction Diagram"

	// Filename is the base name of the rendered artifacts.
	Filename = "adk_fancy_diagram"

	// DefaultFormat is the image format the diagram is rendered to.
	DefaultFormat = diagram.FormatPNG
)

// Node identifiers.
const (
	User     = "User"
	ADK      = "ADK"
	RAG      = "RAG"
	MCP      = "MCP"
	LLM      = "LLM"
	Response = "Response"
)

var graphAttrs = diagram.Attrs{
	"rankdir":   "TB",
	"splines":   "ortho",
	"bgcolor":   "lightblue:lightyellow",
	"fontcolor": "black",
	"fontsize":  "14",
	"pad":       "0.5",
	"nodesep":   "0.5",
	"ranksep":   "1.0",
}

var nodeDefaults = diagram.Attrs{
	"style":     "filled",
	"fontsize":  "12",
	"fontcolor": "black",
	"penwidth":  "2",
}

var edgeDefaults = diagram.Attrs{
	"color":     "darkblue",
	"penwidth":  "2",
	"fontsize":  "10",
	"fontcolor": "darkblue",
}

var nodes = []diagram.Node{
	{ID: User, Label: "User\n(Query Input)", Shape: diagram.ShapeEllipse, FillColor: "lightgreen", Color: "darkgreen"},
	{ID: ADK, Label: "Google ADK\n(LlmAgent, SequentialAgent)", Shape: diagram.ShapeBox, FillColor: "lightyellow", Color: "goldenrod", Style: []string{"filled", "rounded"}},
	{ID: RAG, Label: "RAG\n(Vector Store, Knowledge Base)", Shape: diagram.ShapeDiamond, FillColor: "lightpink", Color: "crimson"},
	{ID: MCP, Label: "MCP Server\n(Tools: YouTube, Database)", Shape: diagram.ShapeHexagon, FillColor: "lightcyan", Color: "teal"},
	{ID: LLM, Label: "LLM\n(Gemini, Gemma 3)", Shape: diagram.ShapeParallelogram, FillColor: "lavender", Color: "purple"},
	{ID: Response, Label: "Response\n(Answer Output)", Shape: diagram.ShapeEllipse, FillColor: "lightgreen", Color: "darkgreen"},
}

var edges = []diagram.Edge{
	{From: User, To: ADK, Label: "Submits Query", Color: "darkgreen"},
	{From: ADK, To: RAG, Label: "Retrieve Data", Color: "crimson"},
	{From: ADK, To: MCP, Label: "Access Tools", Color: "teal"},
	{From: RAG, To: LLM, Label: "Augmented Data", Color: "purple"},
	{From: MCP, To: LLM, Label: "Tool Outputs", Color: "purple"},
	{From: LLM, To: Response, Label: "Generate Answer", Color: "darkblue"},
	{From: Response, To: User, Label: "Deliver Response", Color: "darkgreen", Style: "dashed"},
}

// Build returns the diagram declared for the given output format.
// An error means the tables above violate a graph invariant.
func Build(format diagram.Format) (*diagram.Graph, error) {
	g := diagram.New(Comment, format,
		diagram.WithGraphAttrs(graphAttrs),
		diagram.WithNodeDefaults(nodeDefaults),
		diagram.WithEdgeDefaults(edgeDefaults),
	)
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}
