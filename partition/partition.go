// Package partition implements the unit of ownership described in spec
// §4.3: one subgraph, its vertex state, its workset/workqueue, and its
// inbox/outbox arrays, all resident on one device.
package partition

import (
	"github.com/bspgraph/bsp/device"
	"github.com/bspgraph/bsp/mailbox"
	"github.com/bspgraph/bsp/stream"
)

// Partition owns one subgraph on one device (spec §4.3).
type Partition[V any, M any] struct {
	Id       uint32
	Device   *device.Device
	NumParts uint32

	Vertices  device.Buffer[uint32]   // CSR offsets, length V_p+1
	Edges     device.Buffer[EdgeRef]  // CSR adjacency
	GlobalIds device.Buffer[uint32]   // local -> global id

	VertexValues device.Buffer[V]

	Workset       device.Buffer[uint32] // 0/1 flags, length V_p
	Workqueue     device.Buffer[uint32] // compacted active ids
	WorkqueueSize uint32                // host mirror, valid after Phase T's copy

	Inboxes  []*mailbox.Box[M] // Inboxes[q] receives from q; Inboxes[Id] and Outboxes[Id] unused (nil)
	Outboxes []*mailbox.Box[M]

	Streams [2]*stream.Stream // Streams[1] carries the pipeline; Streams[0] reserved (spec §5, §9)

	ScatterEvent, CompactEvent, ExpandEvent stream.Event
}

// New constructs a Partition from its subgraph: allocates every device
// buffer, uploads the CSR and global ids, zero-initializes the workset,
// and sizes each outbox to its worst-case edge fan-out, left-shifted by
// queueMultiplier (spec §3's capacity invariant, widened by the engine's
// QueueMultiplier option as headroom against message bursts). Inbox
// sizing happens in a second pass (LinkInbox) once every partition's
// outboxes are known, since an inbox must match its peer's outbox
// capacity.
func New[V any, M any](dev *device.Device, sg *Subgraph, queueMultiplier uint8) *Partition[V, M] {
	p := &Partition[V, M]{
		Id:       sg.PartitionId,
		Device:   dev,
		NumParts: sg.NumPartitions,
	}

	p.Vertices.Resize(dev, len(sg.Vertices))
	copy(p.Vertices.Host(), sg.Vertices)
	p.Vertices.Upload()

	p.Edges.Resize(dev, len(sg.Edges))
	copy(p.Edges.Host(), sg.Edges)
	p.Edges.Upload()

	p.GlobalIds.Resize(dev, len(sg.GlobalIds))
	copy(p.GlobalIds.Host(), sg.GlobalIds)
	p.GlobalIds.Upload()

	vp := sg.VertexCount()
	p.VertexValues.Resize(dev, vp)

	p.Workset.Resize(dev, vp)
	p.Workset.Upload() // zero-initialized

	p.Workqueue.Resize(dev, vp)
	p.WorkqueueSize = 0

	p.Outboxes = make([]*mailbox.Box[M], sg.NumPartitions)
	p.Inboxes = make([]*mailbox.Box[M], sg.NumPartitions)
	for q := uint32(0); q < sg.NumPartitions; q++ {
		if q == sg.PartitionId {
			continue
		}
		box := &mailbox.Box[M]{}
		box.Resize(sg.FanoutTo(q) << queueMultiplier)
		p.Outboxes[q] = box
	}

	p.Streams[0] = stream.New(8)
	p.Streams[1] = stream.New(8)

	return p
}

// LinkInbox sizes this partition's inbox from q to match q's outbox
// capacity to this partition (spec §3's capacity invariant: "sizes each
// inbox's two buffers to match the corresponding peer's outbox
// capacity").
func (p *Partition[V, M]) LinkInbox(fromQ uint32, peerOutboxCapacity uint32) {
	box := &mailbox.Box[M]{}
	box.Resize(peerOutboxCapacity)
	p.Inboxes[fromQ] = box
}

func (p *Partition[V, M]) VertexCount() int {
	return p.VertexValues.Len()
}

func (p *Partition[V, M]) Close() {
	p.Streams[0].Close()
	p.Streams[1].Close()
	p.Vertices.Free()
	p.Edges.Free()
	p.GlobalIds.Free()
	p.VertexValues.Free()
	p.Workset.Free()
	p.Workqueue.Free()
}
