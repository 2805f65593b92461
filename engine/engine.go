// Package engine drives the bulk-synchronous superstep loop over a set of
// partitions, each resident on its own device. It is the Go counterpart
// of the CUDA Engine<VertexValue, MessageValue> class: scatter, compact,
// probe for termination, expand, exchange, synchronize, swap, repeat.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bspgraph/bsp/device"
	"github.com/bspgraph/bsp/internal/bsplog"
	"github.com/bspgraph/bsp/internal/bspwatch"
	"github.com/bspgraph/bsp/kernel"
	"github.com/bspgraph/bsp/partition"
)

// Engine owns every partition of one graph and runs the superstep loop
// over them (spec §4.5).
type Engine[V any, M any] struct {
	Options    Options
	Algorithm  kernel.Algorithm[V, M]
	Partitions []*partition.Partition[V, M]
	devices    []*device.Device

	supersteps int
	total      bspwatch.Watch // restarted at the beginning of each Run
	compTime   time.Duration  // cumulative time spent in scatter/compact/expand
	commTime   time.Duration  // cumulative time spent in exchange/synchronize
}

// New opens one device per subgraph (spec §4.2's "device_id selects which
// physical device"), constructs a Partition on each, links every inbox
// to its peer's outbox capacity, and returns an Engine ready to Run.
func New[V any, M any](subgraphs []*partition.Subgraph, opts Options, alg kernel.Algorithm[V, M]) *Engine[V, M] {
	e := &Engine[V, M]{
		Options:   opts,
		Algorithm: alg,
	}

	e.devices = make([]*device.Device, len(subgraphs))
	e.Partitions = make([]*partition.Partition[V, M], len(subgraphs))
	for i, sg := range subgraphs {
		dev := device.Open(opts.DeviceMode, sg.DeviceId)
		e.devices[i] = dev
		e.Partitions[i] = partition.New[V, M](dev, sg, opts.QueueMultiplier)
	}

	for i, p := range e.Partitions {
		for j, q := range e.Partitions {
			if i == j {
				continue
			}
			p.LinkInbox(q.Id, q.Outboxes[p.Id].Capacity())
		}
	}

	return e
}

// VertexCount is the total number of vertices across every partition.
func (e *Engine[V, M]) VertexCount() int {
	n := 0
	for _, p := range e.Partitions {
		n += p.VertexCount()
	}
	return n
}

// VertexMap applies f to every vertex value on every partition (spec §4.6).
func (e *Engine[V, M]) VertexMap(f func(V) V) {
	var wg sync.WaitGroup
	for _, p := range e.Partitions {
		wg.Add(1)
		go func(p *partition.Partition[V, M]) {
			defer wg.Done()
			kernel.VertexMap(p, f)
		}(p)
	}
	wg.Wait()
}

// VertexFilter applies f to, and activates, the single vertex with the
// given global id (spec §4.6). Used to seed the initial frontier, e.g.
// activating a BFS/SSSP source before the first Run.
func (e *Engine[V, M]) VertexFilter(id uint32, f func(V) V) {
	var wg sync.WaitGroup
	for _, p := range e.Partitions {
		wg.Add(1)
		go func(p *partition.Partition[V, M]) {
			defer wg.Done()
			kernel.VertexFilter(p, id, f)
		}(p)
	}
	wg.Wait()
}

// InitVertices seeds every vertex value from its global id, without
// activating anything. A variant of vertex map (spec §4.6) for
// algorithms whose initial value depends on vertex identity, e.g.
// connected components' "initialized to self" (spec §8 S2).
func (e *Engine[V, M]) InitVertices(f func(globalId uint32) V) {
	var wg sync.WaitGroup
	for _, p := range e.Partitions {
		wg.Add(1)
		go func(p *partition.Partition[V, M]) {
			defer wg.Done()
			globalIds := p.GlobalIds.Host()
			values := p.VertexValues.Host()
			for i, id := range globalIds {
				values[i] = f(id)
			}
			p.VertexValues.Upload()
		}(p)
	}
	wg.Wait()
}

// ActivateAll marks every vertex on every partition active, for
// algorithms that need their first superstep's expand to traverse the
// whole graph rather than a single seeded source (spec §8 S2).
func (e *Engine[V, M]) ActivateAll() {
	var wg sync.WaitGroup
	for _, p := range e.Partitions {
		wg.Add(1)
		go func(p *partition.Partition[V, M]) {
			defer wg.Done()
			workset := p.Workset.Host()
			for i := range workset {
				workset[i] = 1
			}
			p.Workset.Upload()
		}(p)
	}
	wg.Wait()
}

// Gather applies updateAt to every vertex's current value, addressed by
// global id (spec §4.2's gather()), to collect results into caller state.
// Persists each partition's vertexValues to host first (spec §4.6) so the
// values read here reflect whatever the last kernel phase left resident
// on the device.
func (e *Engine[V, M]) Gather(updateAt func(globalId uint32, v V)) {
	for _, p := range e.Partitions {
		p.VertexValues.Persist()
		globalIds := p.GlobalIds.Host()
		values := p.VertexValues.Host()
		for i := range values {
			updateAt(globalIds[i], values[i])
		}
	}
}

// Run drives supersteps (spec §4.5) until no partition has outstanding
// work, cond/update/pack/unpack having been fixed by the Algorithm given
// to New. Returns the number of supersteps executed.
func (e *Engine[V, M]) Run() int {
	e.supersteps = 0
	e.total.Start()
	for {
		e.supersteps++
		terminate := e.superstep()
		if terminate {
			break
		}
	}
	total := e.total.Elapsed()
	log.Info().Msg("bsp: converged after " + bsplog.V(e.supersteps) + " supersteps, total=" +
		bsplog.V(total) + " comp=" + bsplog.V(e.compTime) + " comm=" + bsplog.V(e.commTime))
	return e.supersteps
}

// superstep executes the five phases described in spec §4.5 and returns
// true once every partition's workqueue is empty.
func (e *Engine[V, M]) superstep() bool {
	compStart := time.Now()

	// Phase S: scatter every nonempty inbox into vertex state.
	var wg sync.WaitGroup
	for _, p := range e.Partitions {
		for q := range e.Partitions {
			from := uint32(q)
			if from == p.Id || p.Inboxes[from] == nil || p.Inboxes[from].Length() == 0 {
				continue
			}
			wg.Add(1)
			go func(p *partition.Partition[V, M], from uint32) {
				defer wg.Done()
				p.Streams[1].EnqueueAndWait(func() {
					p.ScatterEvent.RecordStart()
					kernel.Scatter(p, from, e.Algorithm)
					p.ScatterEvent.RecordEnd()
				})
			}(p, from)
		}
	}
	wg.Wait()

	// Phase C: compact the workset into a workqueue.
	for _, p := range e.Partitions {
		wg.Add(1)
		go func(p *partition.Partition[V, M]) {
			defer wg.Done()
			p.Streams[1].EnqueueAndWait(func() {
				p.CompactEvent.RecordStart()
				kernel.Compact(p)
				p.CompactEvent.RecordEnd()
			})
		}(p)
	}
	wg.Wait()

	// Phase T: probe every partition's workqueue size; terminate iff all
	// are empty (spec §4.5's termination rule).
	terminate := true
	for _, p := range e.Partitions {
		if p.WorkqueueSize != 0 {
			terminate = false
		}
	}
	if terminate {
		e.compTime += time.Since(compStart)
		return true
	}

	// Phase E: expand active vertices' edges, producing local activations
	// and remote messages.
	for _, p := range e.Partitions {
		if p.WorkqueueSize == 0 {
			continue
		}
		for _, out := range p.Outboxes {
			if out != nil {
				out.Clear()
			}
		}
		wg.Add(1)
		go func(p *partition.Partition[V, M]) {
			defer wg.Done()
			p.Streams[1].EnqueueAndWait(func() {
				p.ExpandEvent.RecordStart()
				kernel.Expand(p, e.Algorithm)
				p.ExpandEvent.RecordEnd()
			})
		}(p)
	}
	wg.Wait()
	compElapsed := time.Since(compStart)
	e.compTime += compElapsed

	// Phase X: all-to-all exchange, each inbox pulling from its peer's
	// outbox (spec §4.5's exchange semantics).
	commStart := time.Now()
	for _, p := range e.Partitions {
		for _, q := range e.Partitions {
			if p.Id == q.Id {
				continue
			}
			wg.Add(1)
			go func(p, q *partition.Partition[V, M]) {
				defer wg.Done()
				// Enqueued on the source partition's stream, after its expand.
				q.Streams[1].EnqueueAndWait(func() {
					p.Inboxes[q.Id].RecvFrom(q.Outboxes[p.Id])
				})
			}(p, q)
		}
	}
	wg.Wait()

	// Phase Y: synchronize (drain every stream) and swap each inbox's
	// front/back buffers so the next superstep sees this round's messages.
	for _, p := range e.Partitions {
		p.Streams[1].Drain()
	}
	for _, p := range e.Partitions {
		for q := range e.Partitions {
			from := uint32(q)
			if from == p.Id || p.Inboxes[from] == nil {
				continue
			}
			p.Inboxes[from].Swap()
		}
	}
	commElapsed := time.Since(commStart)
	e.commTime += commElapsed

	if e.Options.Profile {
		log.Debug().Msg("bsp: superstep " + bsplog.V(e.supersteps) + " total=" + bsplog.V(compElapsed+commElapsed) +
			" comp=" + bsplog.V(compElapsed) + " comm=" + bsplog.V(commElapsed))
	}

	return false
}

// Close releases every partition and device owned by the engine.
func (e *Engine[V, M]) Close() {
	for _, p := range e.Partitions {
		p.Close()
	}
	for _, d := range e.devices {
		d.Close()
	}
}
