package main

import "math"

// VertexValue is a vertex's hop distance from the current BFS source.
// bsp-radius reuses the BFS relaxation (spec §8 S1) as the primitive for
// a repeated-BFS radius/diameter estimate (spec §1's "radii estimation"
// algorithm family): run BFS from a sample of sources, track each one's
// eccentricity (max finite distance reached), and report the extremes.
type VertexValue = uint32

type MessageValue = uint32

const Inf = math.MaxUint32

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
