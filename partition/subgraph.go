package partition

// EdgeRef is one outgoing CSR edge record: the target's owning partition
// and its local id within that partition (spec §3). Weight is a
// supplement to the base model (absent from the original's edge record)
// that lets algorithms outside plain BFS/CC -- SSSP, PageRank-style
// propagations -- factor an edge weight into the candidate a source
// proposes to a neighbor; unweighted algorithms simply ignore it.
type EdgeRef struct {
	PartitionId uint32
	LocalId     uint32
	Weight      float64
}

// Subgraph is the host-resident, already-partitioned input to a single
// Partition: everything an external ingester (spec §1's "out of scope"
// edge-list parser + partitioner) must hand the core. The core never
// validates these invariants itself (spec §7: "Graph-invariant violation
// ... caller responsibility").
type Subgraph struct {
	PartitionId uint32
	DeviceId    int

	// Vertices is the CSR offset array, length V_p+1.
	Vertices []uint32
	// Edges is the CSR adjacency array, length Vertices[V_p].
	Edges []EdgeRef
	// GlobalIds maps a local vertex id to its global id.
	GlobalIds []uint32

	// NumPartitions is P, needed to size the per-peer outbox/inbox arrays.
	NumPartitions uint32
}

// VertexCount is V_p, the number of vertices owned by this subgraph.
func (s *Subgraph) VertexCount() int {
	return len(s.Vertices) - 1
}

// FanoutTo counts the edges in this subgraph whose target partition is q,
// the worst-case sizing for outboxes_p[q] (spec §3's capacity invariant).
func (s *Subgraph) FanoutTo(q uint32) uint32 {
	n := uint32(0)
	for _, e := range s.Edges {
		if e.PartitionId == q {
			n++
		}
	}
	return n
}
