package main

import "math"

// VertexValue is a vertex's hop distance from the source. Inf marks
// "not yet visited" (spec §8 S1's VertexValue = distance (u32, INF)).
type VertexValue = uint32

// MessageValue carries a candidate distance across a partition boundary.
type MessageValue = uint32

const Inf = math.MaxUint32

// BFS implements kernel.Algorithm[VertexValue, MessageValue]: a vertex
// accepts the first distance it is offered and never again (spec §8 S1's
// cond(v) = v == INF, with the +1 hop folded into Pack: pack(v) = v + 1,
// update takes the incoming candidate as is, unpack = identity).
type BFS struct{}

func (BFS) Cond(current VertexValue, _ VertexValue) bool {
	return current == Inf
}

func (BFS) Update(_ VertexValue, incoming VertexValue) VertexValue {
	return incoming
}

func (BFS) Pack(v VertexValue, _ float64) MessageValue {
	return v + 1
}

func (BFS) Unpack(m MessageValue) VertexValue {
	return m
}
