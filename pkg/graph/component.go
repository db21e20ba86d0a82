package graph

import (
	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// LargestComponent returns the induced subgraph of the connected
// component with the most nodes. Connectivity is evaluated over the
// undirected view of the graph; edge directions are ignored for the
// component computation but preserved in the result. Ties between
// equally sized components are broken by whichever gonum enumerates
// first.
func (g *Graph) LargestComponent() *Graph {
	components := topo.ConnectedComponents(g.undirectedView())

	var largest []gograph.Node
	for _, component := range components {
		if len(component) > len(largest) {
			largest = component
		}
	}

	keep := make(map[string]bool, len(largest))
	for _, node := range largest {
		keep[g.names[node.ID()]] = true
	}

	var out *Graph
	if g.directed {
		out = NewDirected()
	} else {
		out = NewUndirected()
	}
	for _, node := range largest {
		out.AddNode(g.names[node.ID()])
	}
	it := g.wg.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		source := g.names[e.From().ID()]
		target := g.names[e.To().ID()]
		if keep[source] && keep[target] {
			out.SetEdge(source, target, e.Weight())
		}
	}
	for name, w := range g.loops {
		if keep[name] {
			out.SetEdge(name, name, w)
		}
	}
	return out
}

// undirectedView returns the graph itself when it is already undirected,
// or an undirected shadow sharing the same node IDs otherwise.
func (g *Graph) undirectedView() gograph.Undirected {
	if und, ok := g.wg.(gograph.Undirected); ok {
		return und
	}
	shadow := simple.NewUndirectedGraph()
	for id := range g.names {
		shadow.AddNode(simple.Node(id))
	}
	it := g.wg.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		shadow.SetEdge(simple.Edge{
			F: simple.Node(e.From().ID()),
			T: simple.Node(e.To().ID()),
		})
	}
	return shadow
}
