// Package stream is the Go-native analogue of a CUDA stream: a strict FIFO
// ordering of enqueued work, with an explicit Drain as the only
// synchronization point. One partition owns two streams (spec §4.3, §5);
// streams[1] carries the compute+communicate pipeline, streams[0] is
// reserved and currently unused (an implementer MAY collapse to one
// stream, per spec §9's Open Question -- this engine does, see DESIGN.md).
package stream

import "time"

type work struct {
	fn   func()
	done chan struct{}
}

// Stream runs enqueued work items strictly in FIFO order on a single
// dedicated goroutine. That ordering is the sole intra-partition
// dependency guarantee the engine relies on.
type Stream struct {
	q    chan work
	done chan struct{}
}

func New(queueDepth int) *Stream {
	s := &Stream{
		q:    make(chan work, queueDepth),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Stream) loop() {
	for w := range s.q {
		w.fn()
		close(w.done)
	}
	close(s.done)
}

// Enqueue schedules fn to run after every previously-enqueued item on this
// stream has completed. It blocks the caller only while the stream's
// queue is full.
func (s *Stream) Enqueue(fn func()) {
	s.q <- work{fn: fn, done: make(chan struct{})}
}

// EnqueueAndWait schedules fn and blocks until it (and everything queued
// before it) has run. Used by Drain and by the recvMsgs dependency that
// must happen-after the sending partition's expand.
func (s *Stream) EnqueueAndWait(fn func()) {
	w := work{fn: fn, done: make(chan struct{})}
	s.q <- w
	<-w.done
}

// Drain blocks until every item enqueued before this call has completed.
// This is the engine's only global barrier primitive (spec §4.5 Phase Y,
// §5 "Global barrier").
func (s *Stream) Drain() {
	s.EnqueueAndWait(func() {})
}

func (s *Stream) Close() {
	close(s.q)
	<-s.done
}

// Event is the Go-native analogue of a CUDA event pair: a start/end
// timestamp recorded immediately around a kernel dispatch, read back via
// Elapsed (spec §4.3). The engine's per-superstep profiling log line does
// not read it; it times whole phases with time.Since.
type Event struct {
	start time.Time
	end   time.Time
}

func (e *Event) RecordStart() { e.start = time.Now() }
func (e *Event) RecordEnd()   { e.end = time.Now() }

func (e *Event) Elapsed() time.Duration {
	if e.start.IsZero() || e.end.IsZero() {
		return 0
	}
	return e.end.Sub(e.start)
}
