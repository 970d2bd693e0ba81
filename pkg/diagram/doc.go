// Package diagram models a small, hand-authored directed graph and serializes
// it to Graphviz DOT.
//
// # Overview
//
// A [Graph] carries a title comment, a declared output [Format], and three
// sets of defaults (graph, node and edge attributes). Nodes and edges are
// added once, in order, and never mutated:
//
//	g := diagram.New("Pipeline", diagram.FormatPNG,
//	    diagram.WithGraphAttrs(diagram.Attrs{"rankdir": "TB"}),
//	    diagram.WithNodeDefaults(diagram.Attrs{"style": "filled"}),
//	)
//	_ = g.AddNode(diagram.Node{ID: "in", Label: "Input", Shape: diagram.ShapeEllipse})
//	_ = g.AddNode(diagram.Node{ID: "out", Label: "Output", Shape: diagram.ShapeBox})
//	_ = g.AddEdge(diagram.Edge{From: "in", To: "out", Label: "flows to"})
//	dot := g.DOT()
//
// # Invariants
//
// Node IDs are unique and non-empty; a duplicate [Graph.AddNode] fails with
// [ErrDuplicateNodeID] and leaves the first node in place. [Graph.AddEdge]
// refuses endpoints that were not added first, so Graphviz never creates
// unstyled placeholder nodes.
//
// # Determinism
//
// [Graph.DOT] emits statements in insertion order and attributes in sorted
// key order (label first). Two graphs built by the same code serialize to the
// same bytes, which makes the description the thing to compare in tests
// rather than the rendered image.
package diagram
