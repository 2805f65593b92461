// Package mailbox implements the single-producer, single-consumer message
// buffer pair described in spec §4.2: a fixed-capacity double-buffered box
// used as both a partition's outbox (producer: expand) and inbox
// (consumer: scatter).
package mailbox

import "sync/atomic"

// Message is one cross-partition payload: the local id of the vertex that
// should receive it on the destination partition, and the packed value.
type Message[M any] struct {
	ReceiverId uint32
	Value      M
}

// Box is a pair (front, back) of fixed-capacity buffers plus a
// device-resident, host-readable length counter. front is read by
// scatter; back receives the next transfer. Swap exchanges them once per
// superstep, after the exchange phase has synchronized (spec §4.2).
type Box[M any] struct {
	front      []Message[M]
	back       []Message[M]
	length     atomic.Uint32 // length of front, i.e. what scatter will see
	backLength atomic.Uint32 // length of back, populated by RecvFrom, promoted to length by Swap
	capacity   uint32
}

// Resize sets the worst-case capacity for this box: for an outbox, the
// count of edges whose target partition matches the box's destination
// (spec §3's capacity invariant); for an inbox, the matching peer outbox's
// capacity.
func (b *Box[M]) Resize(capacity uint32) {
	b.capacity = capacity
	b.front = make([]Message[M], capacity)
	b.back = make([]Message[M], capacity)
}

func (b *Box[M]) Capacity() uint32 { return b.capacity }

// Length returns the number of live messages in front.
func (b *Box[M]) Length() uint32 { return b.length.Load() }

// Clear resets length to zero. Used on outboxes immediately before expand
// writes into them (spec §4.5 Phase E).
func (b *Box[M]) Clear() { b.length.Store(0) }

// ReserveSlot atomically claims the next free slot in front for a new
// message, as expand's outbox-length increment does (spec §4.4). The
// caller must have already checked capacity (impossible to overflow by
// construction, per spec §3).
func (b *Box[M]) ReserveSlot() uint32 {
	return b.length.Add(1) - 1
}

// Put writes a message into a slot previously reserved with ReserveSlot.
func (b *Box[M]) Put(slot uint32, m Message[M]) {
	b.front[slot] = m
}

// Front is the buffer scatter currently reads.
func (b *Box[M]) Front() []Message[M] {
	return b.front[:b.length.Load()]
}

// RecvFrom performs the peer-to-peer receive: copies src's current front
// (as of the call) into this box's back buffer, and records the count.
// The ordering contract (spec §4.2) requires this to be enqueued on the
// *source* partition's stream, after that partition's expand has
// recorded its end event -- the caller (engine.Engine) is responsible for
// scheduling the call that way; RecvFrom itself is just the copy.
func (b *Box[M]) RecvFrom(src *Box[M]) {
	n := src.Length()
	copy(b.back[:n], src.Front())
	b.backLength.Store(n)
}

// Swap exchanges front and back, making the just-received messages
// readable by the next scatter. Invoked by the driver exactly once per
// inbox per superstep, after the global barrier of Phase Y.
func (b *Box[M]) Swap() {
	b.front, b.back = b.back, b.front
	b.length.Store(b.backLength.Load())
}
