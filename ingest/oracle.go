package ingest

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// simpleNode is a gonum graph.Node keyed by an EdgeList's dense local
// index, the node type of the oracle graphs built below.
type simpleNode int64

func (n simpleNode) ID() int64 { return int64(n) }

// ToGonumWeighted renders an EdgeList as a gonum WeightedDirectedGraph,
// nodes keyed by dense local index, for use as a correctness oracle
// against a gonum/graph/path algorithm (e.g. Dijkstra) rather than
// against this engine's own traversal.
func (el *EdgeList) ToGonumWeighted() *simple.WeightedDirectedGraph {
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i := range el.RawIds {
		g.AddNode(simpleNode(i))
	}
	for _, e := range el.Edges {
		src, dst := int64(e.Src), int64(e.Dst)
		if g.HasEdgeFromTo(src, dst) {
			continue
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simpleNode(src), simpleNode(dst), e.Weight))
	}
	return g
}

// ToGonumDirected renders an EdgeList as a gonum DirectedGraph, ignoring
// weight, for use as a correctness oracle against an unweighted
// traversal (e.g. traverse.BreadthFirst).
func (el *EdgeList) ToGonumDirected() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range el.RawIds {
		g.AddNode(simpleNode(i))
	}
	for _, e := range el.Edges {
		src, dst := int64(e.Src), int64(e.Dst)
		if g.HasEdgeFromTo(src, dst) {
			continue
		}
		g.SetEdge(g.NewEdge(simpleNode(src), simpleNode(dst)))
	}
	return g
}

// ToGonumUndirected renders an EdgeList as a gonum UndirectedGraph, for
// use as a correctness oracle against a gonum/graph/topo algorithm
// (e.g. ConnectedComponents).
func (el *EdgeList) ToGonumUndirected() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range el.RawIds {
		g.AddNode(simpleNode(i))
	}
	for _, e := range el.Edges {
		src, dst := int64(e.Src), int64(e.Dst)
		if src == dst || g.HasEdgeBetween(src, dst) {
			continue
		}
		g.SetEdge(g.NewEdge(simpleNode(src), simpleNode(dst)))
	}
	return g
}

var _ graph.Node = simpleNode(0)
