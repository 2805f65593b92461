package kernel

import (
	"sync/atomic"

	"github.com/bspgraph/bsp/mailbox"
	"github.com/bspgraph/bsp/partition"
)

// Scatter consumes inbox from (spec §4.4 scatterKernel). Races on the same
// receiver are benign iff Update(Unpack(...)) is idempotent for
// duplicated messages, or the algorithm tolerates any surviving write
// (spec §4.4's "is-new-better" / monotone-relaxation pattern); the engine
// imposes no atomicity on vertex writes here.
func Scatter[V any, M any](p *partition.Partition[V, M], from uint32, alg Algorithm[V, M]) {
	p.VertexValues.Persist()
	p.Workset.Persist()

	inbox := p.Inboxes[from]
	msgs := inbox.Front()
	values := p.VertexValues.Host()
	workset := p.Workset.Host()

	parallelFor(len(msgs), func(t int) {
		m := msgs[t]
		incoming := alg.Unpack(m.Value)
		current := values[m.ReceiverId]
		if alg.Cond(current, incoming) {
			values[m.ReceiverId] = alg.Update(current, incoming)
			workset[m.ReceiverId] = 1
		}
	})

	p.VertexValues.Upload()
	p.Workset.Upload()
}

// Compact stream-compacts workset into workqueue (spec §4.4
// compactKernel). The resulting order of ids in workqueue is unspecified.
func Compact[V any, M any](p *partition.Partition[V, M]) {
	p.Workset.Persist()

	workset := p.Workset.Host()
	workqueue := p.Workqueue.Host()
	var size atomic.Uint32

	parallelFor(len(workset), func(i int) {
		if workset[i] == 1 {
			workset[i] = 0
			offset := size.Add(1) - 1
			workqueue[offset] = uint32(i)
		}
	})

	p.WorkqueueSize = size.Load()
	p.Workset.Upload()
	p.Workqueue.Upload()
}

// Expand traverses the outgoing edges of every vertex in the workqueue
// (spec §4.4 expandKernel). Local targets are activated directly; remote
// targets are packed into the destination partition's outbox via an
// atomic slot reservation, which cannot overflow by construction (spec
// §3's capacity invariant).
func Expand[V any, M any](p *partition.Partition[V, M], alg Algorithm[V, M]) {
	p.VertexValues.Persist()
	p.Workset.Persist()
	p.Workqueue.Persist()

	vertices := p.Vertices.Host()
	edges := p.Edges.Host()
	values := p.VertexValues.Host()
	workset := p.Workset.Host()
	workqueue := p.Workqueue.Host()[:p.WorkqueueSize]

	parallelFor(len(workqueue), func(t int) {
		s := workqueue[t]
		for e := vertices[s]; e < vertices[s+1]; e++ {
			edge := edges[e]
			if edge.PartitionId == p.Id {
				// A local target still goes through pack/unpack, so a
				// weighted relaxation behaves identically regardless of
				// which partition the target lives on (spec §4.4's
				// local case is the degenerate same-partition instance
				// of message passing).
				incoming := alg.Unpack(alg.Pack(values[s], edge.Weight))
				current := values[edge.LocalId]
				if alg.Cond(current, incoming) {
					values[edge.LocalId] = alg.Update(current, incoming)
					workset[edge.LocalId] = 1
				}
				continue
			}
			out := p.Outboxes[edge.PartitionId]
			slot := out.ReserveSlot()
			out.Put(slot, mailbox.Message[M]{
				ReceiverId: edge.LocalId,
				Value:      alg.Pack(values[s], edge.Weight),
			})
		}
	})

	p.VertexValues.Upload()
	p.Workset.Upload()
}

// VertexMap applies f to every vertex value on the partition (spec §4.6).
func VertexMap[V any, M any](p *partition.Partition[V, M], f func(V) V) {
	p.VertexValues.Persist()

	values := p.VertexValues.Host()
	parallelFor(len(values), func(i int) {
		values[i] = f(values[i])
	})

	p.VertexValues.Upload()
}

// VertexFilter applies f and activates the single vertex whose global id
// matches (spec §4.6). At most one partition matches, by the
// partitioning invariant; partitions that don't own id do nothing.
func VertexFilter[V any, M any](p *partition.Partition[V, M], id uint32, f func(V) V) {
	p.VertexValues.Persist()
	p.Workset.Persist()

	globalIds := p.GlobalIds.Host()
	values := p.VertexValues.Host()
	workset := p.Workset.Host()

	parallelFor(len(globalIds), func(i int) {
		if globalIds[i] == id {
			values[i] = f(values[i])
			workset[i] = 1
		}
	})

	p.VertexValues.Upload()
	p.Workset.Upload()
}
