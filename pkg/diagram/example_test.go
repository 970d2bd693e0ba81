package diagram_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
)

func ExampleGraph_DOT() {
	g := diagram.New("Request flow", diagram.FormatSVG,
		diagram.WithGraphAttrs(diagram.Attrs{"rankdir": "LR"}),
	)
	_ = g.AddNode(diagram.Node{ID: "client", Label: "Client", Shape: diagram.ShapeEllipse})
	_ = g.AddNode(diagram.Node{ID: "api", Label: "API", Shape: diagram.ShapeBox})
	_ = g.AddEdge(diagram.Edge{From: "client", To: "api", Label: "calls"})

	fmt.Print(g.DOT())
	// Output:
	// // Request flow
	// digraph {
	// 	graph [rankdir=LR]
	// 	client [label=Client shape=ellipse]
	// 	api [label=API shape=box]
	// 	client -> api [label=calls]
	// }
}

func ExampleGraph_AddEdge() {
	g := diagram.New("", diagram.FormatPNG)
	_ = g.AddNode(diagram.Node{ID: "a"})

	err := g.AddEdge(diagram.Edge{From: "a", To: "missing"})
	fmt.Println(errors.Is(err, diagram.ErrUnknownTargetNode))
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// true
	// Edges: 0
}
