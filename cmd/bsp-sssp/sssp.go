package main

import (
	"math"

	"github.com/bspgraph/bsp/kernel"
)

// VertexValue is a vertex's shortest known distance from the source.
type VertexValue = float64

// MessageValue carries a candidate distance across a partition boundary.
type MessageValue = float64

const Inf = math.MaxFloat64

// SSSP is the weighted counterpart of spec §8 S2's relaxation pattern,
// built on the shared monotone-relaxation shape (kernel.Relax): a vertex
// accepts a neighbor's proposal whenever it strictly improves the current
// distance, and Pack folds in the traversed edge's weight (the supplement
// recorded in partition.EdgeRef) unless the source side is still Inf.
var SSSP = kernel.Relax[VertexValue, MessageValue]{
	PackFn: func(v VertexValue, weight float64) MessageValue {
		if v == Inf {
			return Inf
		}
		return v + weight
	},
	UnpackFn: func(m MessageValue) VertexValue { return m },
}
