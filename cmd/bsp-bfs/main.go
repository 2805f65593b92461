// Command bsp-bfs runs breadth-first search from a single source over an
// edge-list graph, partitioned and executed by the engine (spec §8 S1).
package main

import (
	"flag"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/bspgraph/bsp/engine"
	"github.com/bspgraph/bsp/ingest"
	"github.com/bspgraph/bsp/internal/bsplog"
)

func main() {
	sourcePtr := flag.Int("src", 0, "Raw id of the BFS source vertex.")
	opts := engine.FlagsToOptions()

	el := ingest.ReadEdgeList(opts.Name, false)
	subgraphs := ingest.HashPartition(el, opts.NumPartitions)

	eng := engine.New[VertexValue, MessageValue](subgraphs, opts, BFS{})
	defer eng.Close()

	eng.VertexMap(func(VertexValue) VertexValue { return Inf })
	eng.VertexFilter(uint32(*sourcePtr), func(VertexValue) VertexValue { return 0 })

	supersteps := eng.Run()
	log.Info().Msg("bsp-bfs: " + bsplog.V(supersteps) + " supersteps from source " + bsplog.V(*sourcePtr))

	visited, unreached := 0, 0
	eng.Gather(func(globalId uint32, v VertexValue) {
		if v == Inf {
			unreached++
			return
		}
		visited++
		log.Debug().Msg("bsp-bfs: vertex " + bsplog.V(globalId) + " dist=" + bsplog.V(v))
	})
	log.Info().Msg("bsp-bfs: visited=" + bsplog.V(visited) + " unreached=" + bsplog.V(unreached))

	if opts.CheckCorrectness {
		checkAgainstGonumBFS(el, uint32(*sourcePtr), eng)
	}
}

// checkAgainstGonumBFS re-derives every reachable vertex's depth with
// gonum's traverse.BreadthFirst and logs a mismatch for any vertex where
// it disagrees with the engine's converged distance.
func checkAgainstGonumBFS(el *ingest.EdgeList, source uint32, eng *engine.Engine[VertexValue, MessageValue]) {
	g := el.ToGonumDirected()
	depths := make(map[int64]uint32)
	var bf traverse.BreadthFirst
	bf.Walk(g, g.Node(int64(el.VertexMap[source])), func(n graph.Node, d int) bool {
		depths[n.ID()] = uint32(d)
		return false
	})

	mismatches := 0
	eng.Gather(func(globalId uint32, v VertexValue) {
		local := int64(el.VertexMap[globalId])
		want, reachable := depths[local]
		switch {
		case !reachable && v != Inf:
			mismatches++
			log.Warn().Msg("bsp-bfs: correctness: vertex " + bsplog.V(globalId) + " engine=" + bsplog.V(v) + " oracle=unreachable")
		case reachable && v != want:
			mismatches++
			log.Warn().Msg("bsp-bfs: correctness: vertex " + bsplog.V(globalId) + " engine=" + bsplog.V(v) + " oracle=" + bsplog.V(want))
		}
	})
	if mismatches == 0 {
		log.Info().Msg("bsp-bfs: correctness: matches gonum traverse.BreadthFirst oracle")
	} else {
		log.Error().Msg("bsp-bfs: correctness: " + bsplog.V(mismatches) + " vertices disagree with the oracle")
	}
}
