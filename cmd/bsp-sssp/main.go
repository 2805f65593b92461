// Command bsp-sssp computes single-source shortest paths over a weighted
// edge-list graph (spec §1's "single-source shortest path" algorithm
// family, the weighted counterpart of spec §8 S2's relaxation pattern).
package main

import (
	"flag"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/graph/path"

	"github.com/bspgraph/bsp/engine"
	"github.com/bspgraph/bsp/ingest"
	"github.com/bspgraph/bsp/internal/bsplog"
)

func main() {
	sourcePtr := flag.Int("src", 0, "Raw id of the SSSP source vertex.")
	opts := engine.FlagsToOptions()

	el := ingest.ReadEdgeList(opts.Name, false)
	subgraphs := ingest.HashPartition(el, opts.NumPartitions)

	eng := engine.New[VertexValue, MessageValue](subgraphs, opts, SSSP)
	defer eng.Close()

	eng.VertexMap(func(VertexValue) VertexValue { return Inf })
	eng.VertexFilter(uint32(*sourcePtr), func(VertexValue) VertexValue { return 0 })

	supersteps := eng.Run()
	log.Info().Msg("bsp-sssp: " + bsplog.V(supersteps) + " supersteps from source " + bsplog.V(*sourcePtr))

	reached := 0
	eng.Gather(func(globalId uint32, v VertexValue) {
		if v == Inf {
			return
		}
		reached++
		log.Debug().Msg("bsp-sssp: vertex " + bsplog.V(globalId) + " dist=" + bsplog.V(v))
	})
	log.Info().Msg("bsp-sssp: reached=" + bsplog.V(reached))

	if opts.CheckCorrectness {
		checkAgainstGonumDijkstra(el, uint32(*sourcePtr), eng)
	}
}

// checkAgainstGonumDijkstra re-derives every reachable vertex's distance
// with gonum's path.DijkstraFrom and logs a mismatch for any vertex
// where it disagrees with the engine's converged distance.
func checkAgainstGonumDijkstra(el *ingest.EdgeList, source uint32, eng *engine.Engine[VertexValue, MessageValue]) {
	g := el.ToGonumWeighted()
	oracle := path.DijkstraFrom(g.Node(int64(el.VertexMap[source])), g)

	mismatches := 0
	eng.Gather(func(globalId uint32, v VertexValue) {
		want := oracle.WeightTo(int64(el.VertexMap[globalId]))
		switch {
		case math.IsInf(want, 1) && v != Inf:
			mismatches++
			log.Warn().Msg("bsp-sssp: correctness: vertex " + bsplog.V(globalId) + " engine=" + bsplog.V(v) + " oracle=unreachable")
		case !math.IsInf(want, 1) && (v == Inf || math.Abs(v-want) > 1e-9):
			mismatches++
			log.Warn().Msg("bsp-sssp: correctness: vertex " + bsplog.V(globalId) + " engine=" + bsplog.V(v) + " oracle=" + bsplog.V(want))
		}
	})
	if mismatches == 0 {
		log.Info().Msg("bsp-sssp: correctness: matches gonum path.DijkstraFrom oracle")
	} else {
		log.Error().Msg("bsp-sssp: correctness: " + bsplog.V(mismatches) + " vertices disagree with the oracle")
	}
}
