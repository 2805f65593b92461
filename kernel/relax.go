package kernel

import "golang.org/x/exp/constraints"

// Relax is a ready-made Algorithm for the common "accept any strictly
// smaller candidate" shape: spec §8 S2's connected-components scenario
// (cond(v) = incoming < v, update = min) and its weighted shortest-path
// generalization both reduce to this once Pack/Unpack are supplied.
// Ordered lets the same type serve integer labels (component ids, hop
// counts) and floating distances without duplicating Cond/Update per
// algorithm.
type Relax[V constraints.Ordered, M any] struct {
	PackFn   func(v V, weight float64) M
	UnpackFn func(m M) V
}

func (r Relax[V, M]) Cond(current V, incoming V) bool { return incoming < current }
func (r Relax[V, M]) Update(_ V, incoming V) V        { return incoming }
func (r Relax[V, M]) Pack(v V, weight float64) M      { return r.PackFn(v, weight) }
func (r Relax[V, M]) Unpack(m M) V                    { return r.UnpackFn(m) }
