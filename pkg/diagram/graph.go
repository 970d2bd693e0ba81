package diagram

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. The first declaration wins; the graph is left
	// unchanged.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// has not been added.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// has not been added.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Format is the output format identifier declared on a graph, e.g. "png".
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatPNG, FormatSVG, FormatJPG, FormatPDF, FormatDOT}

// Valid reports whether f is one of [Formats].
func (f Format) Valid() bool { return slices.Contains(Formats, f) }

// Ext returns the file extension for f, including the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Shape is a Graphviz node shape.
type Shape string

// Node shapes used by architecture diagrams.
const (
	ShapeEllipse       Shape = "ellipse"
	ShapeBox           Shape = "box"
	ShapeDiamond       Shape = "diamond"
	ShapeHexagon       Shape = "hexagon"
	ShapeParallelogram Shape = "parallelogram"
)

// Attrs holds Graphviz attributes. Keys are emitted in sorted order.
type Attrs map[string]string

// Node is a labeled, styled vertex.
type Node struct {
	ID        string   // Unique identifier
	Label     string   // Display text; may contain line breaks
	Shape     Shape    // Empty means the backend default
	FillColor string   // Interior color
	Color     string   // Border color
	Style     []string // Style flags, e.g. "filled", "rounded"
}

// Attrs returns the node's Graphviz attributes, excluding the label.
func (n Node) Attrs() Attrs {
	a := Attrs{}
	setNonEmpty(a, "shape", string(n.Shape))
	setNonEmpty(a, "fillcolor", n.FillColor)
	setNonEmpty(a, "color", n.Color)
	setNonEmpty(a, "style", strings.Join(n.Style, ","))
	return a
}

func (n Node) clone() Node {
	n.Style = slices.Clone(n.Style)
	return n
}

// Edge is a labeled, styled directed connection between two nodes.
type Edge struct {
	From  string // Source node ID
	To    string // Target node ID
	Label string
	Color string
	Style string // Empty means solid
}

// Attrs returns the edge's Graphviz attributes, excluding the label.
func (e Edge) Attrs() Attrs {
	a := Attrs{}
	setNonEmpty(a, "color", e.Color)
	setNonEmpty(a, "style", e.Style)
	return a
}

// Graph is a directed graph description with global styling defaults.
// Nodes and edges keep their insertion order so the serialized description
// is deterministic.
//
// The zero value is not usable; create graphs with [New].
// Graph is not safe for concurrent use.
type Graph struct {
	comment      string
	format       Format
	graphAttrs   Attrs
	nodeDefaults Attrs
	edgeDefaults Attrs

	nodes []Node
	index map[string]int
	edges []Edge
}

// Option configures a [Graph] at construction time.
type Option func(*Graph)

// WithGraphAttrs merges graph-level attributes (layout direction, spacing,
// background, ...).
func WithGraphAttrs(a Attrs) Option {
	return func(g *Graph) { maps.Copy(g.graphAttrs, a) }
}

// WithNodeDefaults merges default attributes applied to every node.
func WithNodeDefaults(a Attrs) Option {
	return func(g *Graph) { maps.Copy(g.nodeDefaults, a) }
}

// WithEdgeDefaults merges default attributes applied to every edge.
func WithEdgeDefaults(a Attrs) Option {
	return func(g *Graph) { maps.Copy(g.edgeDefaults, a) }
}

// New creates an empty graph carrying the given comment, output format and
// defaults.
func New(comment string, format Format, opts ...Option) *Graph {
	g := &Graph{
		comment:      comment,
		format:       format,
		graphAttrs:   Attrs{},
		nodeDefaults: Attrs{},
		edgeDefaults: Attrs{},
		index:        make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Comment returns the title comment written at the top of the description.
func (g *Graph) Comment() string { return g.comment }

// Format returns the declared output format.
func (g *Graph) Format() Format { return g.format }

// GraphAttrs returns a copy of the graph-level attributes.
func (g *Graph) GraphAttrs() Attrs { return maps.Clone(g.graphAttrs) }

// NodeDefaults returns a copy of the default node attributes.
func (g *Graph) NodeDefaults() Attrs { return maps.Clone(g.nodeDefaults) }

// EdgeDefaults returns a copy of the default edge attributes.
func (g *Graph) EdgeDefaults() Attrs { return maps.Clone(g.edgeDefaults) }

// AddNode records a node. It returns [ErrInvalidNodeID] for an empty ID and
// [ErrDuplicateNodeID] if the ID was already added.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	n = n.clone()
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge records a directed edge between two previously added nodes.
// Unknown endpoints are rejected instead of being created implicitly.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
	}
	g.edges = append(g.edges, e)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i].clone(), true
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.clone()
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeIDs returns node identifiers in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of edges leaving id, in edge order.
func (g *Graph) Children(id string) []string {
	var out []string
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// Validate checks that every edge references declared nodes and that node
// IDs are unique. All violations are joined into one error.
func (g *Graph) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		if n.ID == "" {
			errs = append(errs, ErrInvalidNodeID)
			continue
		}
		if seen[n.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID))
		}
		seen[n.ID] = true
	}
	for _, e := range g.edges {
		if !seen[e.From] || !seen[e.To] {
			errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrInvalidEdgeEndpoint, e.From, e.To))
		}
	}
	return errors.Join(errs...)
}

func setNonEmpty(a Attrs, key, value string) {
	if value != "" {
		a[key] = value
	}
}
