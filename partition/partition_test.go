package partition

import (
	"testing"

	"github.com/bspgraph/bsp/device"
)

func TestSubgraphVertexCountAndFanout(t *testing.T) {
	sg := &Subgraph{
		Vertices: []uint32{0, 2, 3, 3},
		Edges: []EdgeRef{
			{PartitionId: 0, LocalId: 1},
			{PartitionId: 1, LocalId: 0},
			{PartitionId: 1, LocalId: 2},
		},
		NumPartitions: 2,
	}

	if sg.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d, want 3", sg.VertexCount())
	}
	if got := sg.FanoutTo(0); got != 1 {
		t.Errorf("FanoutTo(0) = %d, want 1", got)
	}
	if got := sg.FanoutTo(1); got != 2 {
		t.Errorf("FanoutTo(1) = %d, want 2", got)
	}
}

func TestPartitionNewAllocatesBuffers(t *testing.T) {
	dev := device.Open("Serial", 0)
	defer dev.Close()

	sg := &Subgraph{
		PartitionId: 0,
		Vertices:    []uint32{0, 1, 1},
		Edges: []EdgeRef{
			{PartitionId: 0, LocalId: 1, Weight: 2},
		},
		GlobalIds:     []uint32{10, 20},
		NumPartitions: 2,
	}

	p := New[uint32, uint32](dev, sg, 0)
	defer p.Close()

	if p.VertexCount() != 2 {
		t.Fatalf("VertexCount() = %d, want 2", p.VertexCount())
	}
	if len(p.Vertices.Host()) != 3 {
		t.Errorf("Vertices length = %d, want 3", len(p.Vertices.Host()))
	}
	if len(p.Edges.Host()) != 1 || p.Edges.Host()[0].Weight != 2 {
		t.Errorf("Edges = %+v, want a single weight-2 edge", p.Edges.Host())
	}
	if p.GlobalIds.Host()[0] != 10 || p.GlobalIds.Host()[1] != 20 {
		t.Errorf("GlobalIds = %v, want [10 20]", p.GlobalIds.Host())
	}
	for i, w := range p.Workset.Host() {
		if w != 0 {
			t.Errorf("Workset[%d] = %d, want 0 at construction", i, w)
		}
	}
	if p.WorkqueueSize != 0 {
		t.Errorf("WorkqueueSize = %d, want 0 at construction", p.WorkqueueSize)
	}
	// Outboxes[Id] must stay nil (a partition never sends to itself).
	if p.Outboxes[0] != nil {
		t.Errorf("Outboxes[0] (self) = %+v, want nil", p.Outboxes[0])
	}
	if p.Outboxes[1] == nil {
		t.Fatalf("Outboxes[1] is nil, want a box sized to FanoutTo(1)")
	}
	if p.Outboxes[1].Capacity() != sg.FanoutTo(1) {
		t.Errorf("Outboxes[1].Capacity() = %d, want %d", p.Outboxes[1].Capacity(), sg.FanoutTo(1))
	}
}

func TestPartitionNewAppliesQueueMultiplier(t *testing.T) {
	dev := device.Open("Serial", 0)
	defer dev.Close()

	sg := &Subgraph{
		PartitionId: 0,
		Vertices:    []uint32{0, 1, 1},
		Edges: []EdgeRef{
			{PartitionId: 0, LocalId: 1, Weight: 2},
		},
		GlobalIds:     []uint32{10, 20},
		NumPartitions: 2,
	}

	p := New[uint32, uint32](dev, sg, 3)
	defer p.Close()

	want := sg.FanoutTo(1) << 3
	if p.Outboxes[1].Capacity() != want {
		t.Errorf("Outboxes[1].Capacity() = %d, want %d (FanoutTo << 3)", p.Outboxes[1].Capacity(), want)
	}
}

func TestPartitionLinkInbox(t *testing.T) {
	dev := device.Open("Serial", 0)
	defer dev.Close()

	sg := &Subgraph{
		PartitionId:   0,
		Vertices:      []uint32{0, 0},
		GlobalIds:     []uint32{0},
		NumPartitions: 2,
	}
	p := New[uint32, uint32](dev, sg, 0)
	defer p.Close()

	p.LinkInbox(1, 7)
	if p.Inboxes[1] == nil {
		t.Fatalf("Inboxes[1] is nil after LinkInbox")
	}
	if p.Inboxes[1].Capacity() != 7 {
		t.Errorf("Inboxes[1].Capacity() = %d, want 7", p.Inboxes[1].Capacity())
	}
}
