// Command bsp-radius estimates a graph's radius and diameter by running
// BFS from a sample of sources and tracking each source's eccentricity
// (spec §1's "radii estimation" algorithm family). Exact radius/diameter
// needs a BFS from every vertex; this samples to bound the cost on large
// graphs, the standard approximation used for this kind of estimate.
package main

import (
	"flag"
	"math/rand"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/bspgraph/bsp/engine"
	"github.com/bspgraph/bsp/ingest"
	"github.com/bspgraph/bsp/internal/bsplog"
)

func main() {
	samplesPtr := flag.Int("samples", 8, "Number of BFS sources to sample.")
	seedPtr := flag.Int64("seed", 1, "RNG seed for source sampling.")
	opts := engine.FlagsToOptions()

	el := ingest.ReadEdgeList(opts.Name, true)
	subgraphs := ingest.HashPartition(el, opts.NumPartitions)

	n := el.VertexCount()
	samples := *samplesPtr
	if samples > n {
		samples = n
	}
	rng := rand.New(rand.NewSource(*seedPtr))

	var oracleGraph graph.Undirected
	if opts.CheckCorrectness {
		oracleGraph = el.ToGonumUndirected()
	}
	mismatches := 0

	radius := uint32(Inf)
	diameter := uint32(0)
	for i := 0; i < samples; i++ {
		source := el.RawIds[rng.Intn(n)]

		// A fresh Engine per sample, not one Engine across every sample's
		// Run() (spec §4.5's termination superstep skips Phase Y, so a
		// reused Engine's inboxes would still carry the previous sample's
		// unconsumed messages into the next sample's first scatter).
		eng := engine.New[VertexValue, MessageValue](subgraphs, opts, BFS{})

		eng.VertexMap(func(VertexValue) VertexValue { return Inf })
		eng.VertexFilter(source, func(VertexValue) VertexValue { return 0 })
		eng.Run()

		ecc := uint32(0)
		eng.Gather(func(_ uint32, v VertexValue) {
			if v != Inf && v > ecc {
				ecc = v
			}
		})
		eng.Close()
		if ecc > diameter {
			diameter = ecc
		}
		if ecc < radius {
			radius = ecc
		}
		log.Debug().Msg("bsp-radius: source " + bsplog.V(source) + " eccentricity=" + bsplog.V(ecc))

		if opts.CheckCorrectness {
			want := gonumEccentricity(oracleGraph, el.VertexMap[source])
			if want != ecc {
				mismatches++
				log.Warn().Msg("bsp-radius: correctness: source " + bsplog.V(source) +
					" engine=" + bsplog.V(ecc) + " oracle=" + bsplog.V(want))
			}
		}
	}

	log.Info().Msg("bsp-radius: estimated radius<=" + bsplog.V(radius) + " diameter>=" + bsplog.V(diameter) +
		" over " + bsplog.V(samples) + " samples")

	if opts.CheckCorrectness {
		if mismatches == 0 {
			log.Info().Msg("bsp-radius: correctness: every sampled eccentricity matches the gonum traverse.BreadthFirst oracle")
		} else {
			log.Error().Msg("bsp-radius: correctness: " + bsplog.V(mismatches) + " sampled eccentricities disagree with the oracle")
		}
	}
}

// gonumEccentricity walks g from source with gonum's traverse.BreadthFirst
// and returns the greatest depth reached, the oracle for one sample's
// eccentricity.
func gonumEccentricity(g graph.Undirected, source uint32) uint32 {
	var ecc uint32
	var bf traverse.BreadthFirst
	bf.Walk(g, g.Node(int64(source)), func(n graph.Node, d int) bool {
		if uint32(d) > ecc {
			ecc = uint32(d)
		}
		return false
	})
	return ecc
}
