package ingest

import (
	"hash/fnv"
	"math/rand"

	"github.com/bspgraph/bsp/partition"
)

// HashPartition assigns each vertex to fnv32(rawId) % numParts, a
// deterministic edge-cut partitioning (spec §3's "externally supplied,
// already-partitioned" input, made concrete for repeatable tests).
func HashPartition(el *EdgeList, numParts uint32) []*partition.Subgraph {
	n := el.VertexCount()
	partitionOf := make([]uint32, n)
	for v := 0; v < n; v++ {
		h := fnv.New32a()
		raw := el.RawIds[v]
		h.Write([]byte{byte(raw), byte(raw >> 8), byte(raw >> 16), byte(raw >> 24)})
		partitionOf[v] = h.Sum32() % numParts
	}
	return buildSubgraphs(el, numParts, partitionOf)
}

// RandomPartition assigns each vertex to a uniformly random partition,
// the Go-native analogue of the original's RandomEdgeCut edge-cut
// partitioner (spec §1, original_source/src/olive/engine.h's init()).
func RandomPartition(el *EdgeList, numParts uint32, rng *rand.Rand) []*partition.Subgraph {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	n := el.VertexCount()
	partitionOf := make([]uint32, n)
	for v := 0; v < n; v++ {
		partitionOf[v] = uint32(rng.Intn(int(numParts)))
	}
	return buildSubgraphs(el, numParts, partitionOf)
}

// buildSubgraphs turns a vertex->partition assignment into CSR-encoded,
// per-partition Subgraphs: every edge crossing partitions becomes an
// EdgeRef naming the target's owning partition and local id (spec §3).
func buildSubgraphs(el *EdgeList, numParts uint32, partitionOf []uint32) []*partition.Subgraph {
	n := el.VertexCount()

	localId := make([]uint32, n)
	counts := make([]uint32, numParts)
	for v := 0; v < n; v++ {
		p := partitionOf[v]
		localId[v] = counts[p]
		counts[p]++
	}

	outStart := make([]uint32, n+1)
	for _, e := range el.Edges {
		outStart[e.Src+1]++
	}
	for v := 0; v < n; v++ {
		outStart[v+1] += outStart[v]
	}
	cursor := append([]uint32(nil), outStart[:n]...)
	adjEdgeIdx := make([]uint32, len(el.Edges))
	for i, e := range el.Edges {
		adjEdgeIdx[cursor[e.Src]] = uint32(i)
		cursor[e.Src]++
	}

	subgraphs := make([]*partition.Subgraph, numParts)
	for p := uint32(0); p < numParts; p++ {
		subgraphs[p] = &partition.Subgraph{
			PartitionId:   p,
			DeviceId:      int(p),
			NumPartitions: numParts,
			Vertices:      make([]uint32, counts[p]+1),
			GlobalIds:     make([]uint32, counts[p]),
		}
	}

	for v := 0; v < n; v++ {
		p := partitionOf[v]
		sg := subgraphs[p]
		lid := localId[v]
		sg.GlobalIds[lid] = el.RawIds[v]

		for k := outStart[v]; k < outStart[v+1]; k++ {
			e := el.Edges[adjEdgeIdx[k]]
			sg.Edges = append(sg.Edges, partition.EdgeRef{
				PartitionId: partitionOf[e.Dst],
				LocalId:     localId[e.Dst],
				Weight:      e.Weight,
			})
		}
		sg.Vertices[lid+1] = uint32(len(sg.Edges))
	}

	return subgraphs
}
