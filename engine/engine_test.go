package engine

import (
	"testing"

	"github.com/bspgraph/bsp/partition"
)

const inf = ^uint32(0)

// bfsAlg is the spec §8 S1 algorithm: cond(v) = v == Inf, update = identity
// (the incoming candidate, which Pack has already advanced by one hop).
type bfsAlg struct{}

func (bfsAlg) Cond(current uint32, _ uint32) bool       { return current == inf }
func (bfsAlg) Update(_ uint32, incoming uint32) uint32  { return incoming }
func (bfsAlg) Pack(v uint32, _ float64) uint32          { return v + 1 }
func (bfsAlg) Unpack(m uint32) uint32                   { return m }

// ccAlg is the spec §8 S2 algorithm: cond(v) = incoming < v, update = min.
type ccAlg struct{}

func (ccAlg) Cond(current uint32, incoming uint32) bool { return incoming < current }
func (ccAlg) Update(_ uint32, incoming uint32) uint32   { return incoming }
func (ccAlg) Pack(v uint32, _ float64) uint32           { return v }
func (ccAlg) Unpack(m uint32) uint32                    { return m }

func testOptions() Options {
	return Options{DeviceMode: "Serial"}
}

func gatherAll[V any, M any](e *Engine[V, M]) map[uint32]V {
	out := make(map[uint32]V)
	e.Gather(func(id uint32, v V) { out[id] = v })
	return out
}

// TestS1BFSPathGraph is spec §8 S1: BFS on a 6-vertex path graph split
// across 2 partitions, source 0. Expected converged distances [0..5].
func TestS1BFSPathGraph(t *testing.T) {
	subgraphs := []*partition.Subgraph{
		{
			PartitionId: 0,
			Vertices:    []uint32{0, 1, 2, 3},
			Edges: []partition.EdgeRef{
				{PartitionId: 0, LocalId: 1, Weight: 1}, // 0->1
				{PartitionId: 0, LocalId: 2, Weight: 1}, // 1->2
				{PartitionId: 1, LocalId: 0, Weight: 1}, // 2->3 (cross)
			},
			GlobalIds:     []uint32{0, 1, 2},
			NumPartitions: 2,
		},
		{
			PartitionId: 1,
			Vertices:    []uint32{0, 1, 2, 2},
			Edges: []partition.EdgeRef{
				{PartitionId: 1, LocalId: 1, Weight: 1}, // 3->4
				{PartitionId: 1, LocalId: 2, Weight: 1}, // 4->5
			},
			GlobalIds:     []uint32{3, 4, 5},
			NumPartitions: 2,
		},
	}

	e := New[uint32, uint32](subgraphs, testOptions(), bfsAlg{})
	defer e.Close()

	e.VertexMap(func(uint32) uint32 { return inf })
	e.VertexFilter(0, func(uint32) uint32 { return 0 })

	supersteps := e.Run()
	if supersteps < 5 {
		t.Errorf("supersteps = %d, want at least 5 to propagate distance 5", supersteps)
	}

	want := map[uint32]uint32{0: 0, 1: 1, 2: 2, 3: 3, 4: 4, 5: 5}
	got := gatherAll(e)
	for id, d := range want {
		if got[id] != d {
			t.Errorf("vertex %d: distance = %d, want %d", id, got[id], d)
		}
	}
}

// TestS2ConnectedComponents is spec §8 S2: two disjoint bidirectionalized
// triangles split across 3 partitions, min-id propagation.
func TestS2ConnectedComponents(t *testing.T) {
	subgraphs := []*partition.Subgraph{
		{ // partition 0 owns globals 0, 3
			PartitionId: 0,
			Vertices:    []uint32{0, 2, 4},
			Edges: []partition.EdgeRef{
				{PartitionId: 1, LocalId: 0, Weight: 1}, // 0->1
				{PartitionId: 2, LocalId: 0, Weight: 1}, // 0->2
				{PartitionId: 1, LocalId: 1, Weight: 1}, // 3->4
				{PartitionId: 2, LocalId: 1, Weight: 1}, // 3->5
			},
			GlobalIds:     []uint32{0, 3},
			NumPartitions: 3,
		},
		{ // partition 1 owns globals 1, 4
			PartitionId: 1,
			Vertices:    []uint32{0, 2, 4},
			Edges: []partition.EdgeRef{
				{PartitionId: 0, LocalId: 0, Weight: 1}, // 1->0
				{PartitionId: 2, LocalId: 0, Weight: 1}, // 1->2
				{PartitionId: 0, LocalId: 1, Weight: 1}, // 4->3
				{PartitionId: 2, LocalId: 1, Weight: 1}, // 4->5
			},
			GlobalIds:     []uint32{1, 4},
			NumPartitions: 3,
		},
		{ // partition 2 owns globals 2, 5
			PartitionId: 2,
			Vertices:    []uint32{0, 2, 4},
			Edges: []partition.EdgeRef{
				{PartitionId: 0, LocalId: 0, Weight: 1}, // 2->0
				{PartitionId: 1, LocalId: 0, Weight: 1}, // 2->1
				{PartitionId: 0, LocalId: 1, Weight: 1}, // 5->3
				{PartitionId: 1, LocalId: 1, Weight: 1}, // 5->4
			},
			GlobalIds:     []uint32{2, 5},
			NumPartitions: 3,
		},
	}

	e := New[uint32, uint32](subgraphs, testOptions(), ccAlg{})
	defer e.Close()

	e.InitVertices(func(id uint32) uint32 { return id })
	e.ActivateAll()
	e.Run()

	want := map[uint32]uint32{0: 0, 1: 0, 2: 0, 3: 3, 4: 3, 5: 3}
	got := gatherAll(e)
	for id, label := range want {
		if got[id] != label {
			t.Errorf("vertex %d: component = %d, want %d", id, got[id], label)
		}
	}
}

// TestS3SingleVertexGraph is spec §8 S3: a single vertex with no edges,
// BFS from itself. Convergence must leave the workqueue empty.
func TestS3SingleVertexGraph(t *testing.T) {
	subgraphs := []*partition.Subgraph{
		{
			PartitionId:   0,
			Vertices:      []uint32{0, 0},
			GlobalIds:     []uint32{0},
			NumPartitions: 1,
		},
	}

	e := New[uint32, uint32](subgraphs, testOptions(), bfsAlg{})
	defer e.Close()

	e.VertexMap(func(uint32) uint32 { return inf })
	e.VertexFilter(0, func(uint32) uint32 { return 0 })

	supersteps := e.Run()
	if supersteps < 1 {
		t.Fatalf("supersteps = %d, want at least 1", supersteps)
	}

	if e.Partitions[0].WorkqueueSize != 0 {
		t.Errorf("WorkqueueSize after convergence = %d, want 0", e.Partitions[0].WorkqueueSize)
	}
	got := gatherAll(e)
	if got[0] != 0 {
		t.Errorf("vertex 0 value = %d, want 0", got[0])
	}
}

// TestS4FullyRemoteStar is spec §8 S4: a center on partition 0 with 10
// leaves spread over partitions 1..3. Checks the single-message-per-leaf
// property directly after one manual superstep, then full convergence.
func TestS4FullyRemoteStar(t *testing.T) {
	leavesPerPartition := map[uint32][]uint32{
		1: {100, 101, 102, 103},
		2: {200, 201, 202},
		3: {300, 301, 302},
	}

	centerEdges := []partition.EdgeRef{}
	for p, leaves := range leavesPerPartition {
		for i := range leaves {
			centerEdges = append(centerEdges, partition.EdgeRef{PartitionId: p, LocalId: uint32(i), Weight: 1})
		}
	}

	subgraphs := []*partition.Subgraph{
		{
			PartitionId:   0,
			Vertices:      []uint32{0, uint32(len(centerEdges))},
			Edges:         centerEdges,
			GlobalIds:     []uint32{0},
			NumPartitions: 4,
		},
	}
	for p, leaves := range leavesPerPartition {
		vertices := make([]uint32, len(leaves)+1) // all zero: no outgoing edges
		subgraphs = append(subgraphs, &partition.Subgraph{
			PartitionId:   p,
			Vertices:      vertices,
			GlobalIds:     leaves,
			NumPartitions: 4,
		})
	}

	e := New[uint32, uint32](subgraphs, testOptions(), bfsAlg{})
	defer e.Close()

	e.VertexMap(func(uint32) uint32 { return inf })
	e.VertexFilter(0, func(uint32) uint32 { return 0 })

	// Run exactly one superstep by hand and check per-leaf-partition inbox
	// lengths after the driver has swapped them into scatterable state.
	e.supersteps = 1
	terminate := e.superstep()
	if terminate {
		t.Fatalf("terminated after the first superstep, want work still pending")
	}
	for _, p := range e.Partitions {
		if p.Id == 0 {
			continue
		}
		got := p.Inboxes[0].Length()
		want := uint32(len(leavesPerPartition[p.Id]))
		if got != want {
			t.Errorf("partition %d: inbox[0] length = %d, want %d", p.Id, got, want)
		}
	}

	for {
		if e.superstep() {
			break
		}
	}

	got := gatherAll(e)
	for id, v := range got {
		if id == 0 {
			if v != 0 {
				t.Errorf("center value = %d, want 0", v)
			}
			continue
		}
		if v != 1 {
			t.Errorf("leaf %d value = %d, want 1", id, v)
		}
	}
}

// TestS5IdempotenceUnderRetransmission is spec §8 S5: a duplicated edge
// (multi-edge) must not change the converged result versus the
// single-edge case, because BFS's cond only admits a write to an unvisited
// vertex (the first candidate wins, a duplicate changes nothing).
func TestS5IdempotenceUnderRetransmission(t *testing.T) {
	single := []*partition.Subgraph{
		{
			PartitionId: 0,
			Vertices:    []uint32{0, 1, 1},
			Edges: []partition.EdgeRef{
				{PartitionId: 0, LocalId: 1, Weight: 1},
			},
			GlobalIds:     []uint32{0, 1},
			NumPartitions: 1,
		},
	}
	duplicated := []*partition.Subgraph{
		{
			PartitionId: 0,
			Vertices:    []uint32{0, 2, 2},
			Edges: []partition.EdgeRef{
				{PartitionId: 0, LocalId: 1, Weight: 1},
				{PartitionId: 0, LocalId: 1, Weight: 1}, // duplicate of the edge above
			},
			GlobalIds:     []uint32{0, 1},
			NumPartitions: 1,
		},
	}

	run := func(subgraphs []*partition.Subgraph) map[uint32]uint32 {
		e := New[uint32, uint32](subgraphs, testOptions(), bfsAlg{})
		defer e.Close()
		e.VertexMap(func(uint32) uint32 { return inf })
		e.VertexFilter(0, func(uint32) uint32 { return 0 })
		e.Run()
		return gatherAll(e)
	}

	singleResult := run(single)
	duplicatedResult := run(duplicated)

	for id, v := range singleResult {
		if duplicatedResult[id] != v {
			t.Errorf("vertex %d: duplicated-edge result = %d, single-edge result = %d", id, duplicatedResult[id], v)
		}
	}
}

// TestS6TerminationCorrectness is spec §8 S6: after convergence, one more
// manual superstep must report termination without mutating any value.
func TestS6TerminationCorrectness(t *testing.T) {
	subgraphs := []*partition.Subgraph{
		{
			PartitionId: 0,
			Vertices:    []uint32{0, 1, 1},
			Edges: []partition.EdgeRef{
				{PartitionId: 0, LocalId: 1, Weight: 1},
			},
			GlobalIds:     []uint32{0, 1},
			NumPartitions: 1,
		},
	}

	e := New[uint32, uint32](subgraphs, testOptions(), bfsAlg{})
	defer e.Close()

	e.VertexMap(func(uint32) uint32 { return inf })
	e.VertexFilter(0, func(uint32) uint32 { return 0 })
	e.Run()

	before := gatherAll(e)

	e.supersteps++
	terminate := e.superstep()
	if !terminate {
		t.Fatalf("superstep() after convergence returned terminate=false")
	}

	after := gatherAll(e)
	for id, v := range before {
		if after[id] != v {
			t.Errorf("vertex %d changed across the extra superstep: %d -> %d", id, v, after[id])
		}
	}
	for _, p := range e.Partitions {
		if p.WorkqueueSize != 0 {
			t.Errorf("partition %d WorkqueueSize = %d after terminal superstep, want 0", p.Id, p.WorkqueueSize)
		}
	}
}
