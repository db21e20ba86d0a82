// Package graph provides a weighted instance graph keyed by instance
// name. Nodes are fediverse instances, edges are interactions between
// them, and every edge carries a single float64 weight.
//
// The container is backed by gonum's simple weighted graphs; setting an
// edge that already exists replaces its weight (last write wins).
package graph

import (
	"sort"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Edge is one weighted interaction between two instances.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// weightedGraph is the slice of the gonum API shared by the directed and
// undirected simple weighted graphs.
type weightedGraph interface {
	gograph.Weighted
	gograph.WeightedBuilder
	WeightedEdges() gograph.WeightedEdges
}

// Graph is a directed or undirected weighted graph over string-named
// nodes. The zero value is not usable; create instances with NewDirected
// or NewUndirected.
type Graph struct {
	directed bool
	wg       weightedGraph

	ids    map[string]int64
	names  map[int64]string
	nextID int64

	// gonum's simple graphs reject self edges, so self-interactions are
	// tracked separately. They count as edges but never affect
	// connectivity.
	loops map[string]float64
}

// NewDirected creates an empty directed graph.
func NewDirected() *Graph {
	return &Graph{
		directed: true,
		wg:       simple.NewWeightedDirectedGraph(0, 0),
		ids:      make(map[string]int64),
		names:    make(map[int64]string),
		loops:    make(map[string]float64),
	}
}

// NewUndirected creates an empty undirected graph.
func NewUndirected() *Graph {
	return &Graph{
		wg:    simple.NewWeightedUndirectedGraph(0, 0),
		ids:   make(map[string]int64),
		names: make(map[int64]string),
		loops: make(map[string]float64),
	}
}

// IsDirected reports whether edges are directional.
func (g *Graph) IsDirected() bool {
	return g.directed
}

// AddNode ensures a node named name exists.
func (g *Graph) AddNode(name string) {
	g.ensure(name)
}

func (g *Graph) ensure(name string) int64 {
	if id, ok := g.ids[name]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.ids[name] = id
	g.names[id] = name
	g.wg.AddNode(simple.Node(id))
	return id
}

// SetEdge inserts an edge between source and target with the given
// weight, creating the nodes as needed. An existing edge between the
// same pair has its weight replaced.
func (g *Graph) SetEdge(source, target string, weight float64) {
	if source == target {
		g.ensure(source)
		g.loops[source] = weight
		return
	}
	sid := g.ensure(source)
	tid := g.ensure(target)
	g.wg.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(sid),
		T: simple.Node(tid),
		W: weight,
	})
}

// HasNode reports whether a node named name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.ids[name]
	return ok
}

// HasEdge reports whether an edge exists from source to target. For
// undirected graphs the orientation of the arguments does not matter.
func (g *Graph) HasEdge(source, target string) bool {
	_, ok := g.Weight(source, target)
	return ok
}

// Weight returns the weight of the edge from source to target, if any.
func (g *Graph) Weight(source, target string) (float64, bool) {
	if source == target {
		w, ok := g.loops[source]
		return w, ok
	}
	sid, ok := g.ids[source]
	if !ok {
		return 0, false
	}
	tid, ok := g.ids[target]
	if !ok {
		return 0, false
	}
	return g.wg.Weight(sid, tid)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of edges, self loops included.
func (g *Graph) EdgeCount() int {
	return g.wg.WeightedEdges().Len() + len(g.loops)
}

// Nodes returns all node names in ascending order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.ids))
	for name := range g.ids {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// Edges returns all edges, self loops included. Order is unspecified.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	it := g.wg.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		edges = append(edges, Edge{
			Source: g.names[e.From().ID()],
			Target: g.names[e.To().ID()],
			Weight: e.Weight(),
		})
	}
	for name, w := range g.loops {
		edges = append(edges, Edge{Source: name, Target: name, Weight: w})
	}
	return edges
}
