package main

import "github.com/bspgraph/bsp/kernel"

// VertexValue is the smallest vertex id seen so far, the component label
// (spec §8 S2: VertexValue = min-id-seen, initialized to self).
type VertexValue = uint32

// MessageValue carries a candidate label across a partition boundary.
type MessageValue = uint32

// CC is spec §8 S2's algorithm (cond(v) = incoming < v, update = min)
// built on the shared monotone-relaxation shape (kernel.Relax); unweighted,
// so Pack passes the candidate label through untouched.
var CC = kernel.Relax[VertexValue, MessageValue]{
	PackFn:   func(v VertexValue, _ float64) MessageValue { return v },
	UnpackFn: func(m MessageValue) VertexValue { return m },
}
