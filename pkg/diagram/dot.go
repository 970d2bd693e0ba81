package diagram

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// DOT returns the graph description in Graphviz DOT syntax.
// The output is byte-identical for identical graphs.
func (g *Graph) DOT() string {
	var buf bytes.Buffer
	_ = g.WriteDOT(&buf)
	return buf.String()
}

// WriteDOT writes the graph description to w.
//
// Statements appear in a fixed order: comment, graph/node/edge defaults,
// nodes in insertion order, then edges in insertion order. Within a statement
// the label comes first and the remaining attributes are sorted by key.
func (g *Graph) WriteDOT(w io.Writer) error {
	var buf bytes.Buffer

	if g.comment != "" {
		for _, line := range strings.Split(g.comment, "\n") {
			fmt.Fprintf(&buf, "// %s\n", line)
		}
	}
	buf.WriteString("digraph {\n")

	writeDefaults(&buf, "graph", g.graphAttrs)
	writeDefaults(&buf, "node", g.nodeDefaults)
	writeDefaults(&buf, "edge", g.edgeDefaults)

	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "\t%s%s\n", quoteID(n.ID), fmtAttrs(n.Label, n.Attrs()))
	}
	for _, e := range g.edges {
		fmt.Fprintf(&buf, "\t%s -> %s%s\n", quoteID(e.From), quoteID(e.To), fmtAttrs(e.Label, e.Attrs()))
	}

	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeDefaults(buf *bytes.Buffer, kind string, a Attrs) {
	if len(a) == 0 {
		return
	}
	fmt.Fprintf(buf, "\t%s%s\n", kind, fmtAttrs("", a))
}

// fmtAttrs renders " [label=... k=v ...]", or "" when there is nothing to emit.
func fmtAttrs(label string, a Attrs) string {
	parts := make([]string, 0, len(a)+1)
	if label != "" {
		parts = append(parts, "label="+quoteID(label))
	}
	for _, k := range slices.Sorted(maps.Keys(a)) {
		parts = append(parts, quoteID(k)+"="+quoteID(a[k]))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}

var (
	plainIDRe = regexp.MustCompile(`^[a-zA-Z_\x{80}-\x{10FFFF}][a-zA-Z_0-9\x{80}-\x{10FFFF}]*$`)
	numeralRe = regexp.MustCompile(`^-?(\.[0-9]+|[0-9]+(\.[0-9]*)?)$`)
	keywords  = []string{"node", "edge", "graph", "digraph", "subgraph", "strict"}
)

// quoteID returns s as a DOT ID, quoting it unless it is a plain identifier
// or numeral that is not a keyword.
func quoteID(s string) string {
	if (plainIDRe.MatchString(s) || numeralRe.MatchString(s)) && !slices.Contains(keywords, strings.ToLower(s)) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
