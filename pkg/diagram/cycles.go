package diagram

// BackEdges returns the edges that close a cycle when the graph is walked
// depth-first from each node in insertion order. A graph whose forward flow is
// acyclic reports only its return paths here; an acyclic graph reports none.
func (g *Graph) BackEdges() []Edge {
	const (
		white = iota
		gray
		black
	)
	state := make(map[string]int, len(g.nodes))
	var back []Edge

	var visit func(id string)
	visit = func(id string) {
		state[id] = gray
		for _, e := range g.edges {
			if e.From != id {
				continue
			}
			switch state[e.To] {
			case white:
				visit(e.To)
			case gray:
				back = append(back, e)
			}
		}
		state[id] = black
	}

	for _, n := range g.nodes {
		if state[n.ID] == white {
			visit(n.ID)
		}
	}
	return back
}
