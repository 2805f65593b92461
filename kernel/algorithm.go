// Package kernel implements the three per-partition device-side
// primitives of spec §4.4 (scatter, compact, expand) plus the vertex
// map/filter utilities of spec §4.6. Each is a massively-parallel map
// over a domain where conceptually "thread t handles element t"; this
// port dispatches that domain across a Go-native worker pool instead of
// device-compiled code, per spec §9's guidance to monomorphize user
// functions at the kernel instantiation site rather than pass device
// function pointers (see DESIGN.md).
package kernel

// Algorithm is the "polymorphic capability bundle" spec §9 asks for in
// place of the four device-callable function pointers of the original
// (cond/update/pack/unpack). One value implements the whole bundle and is
// monomorphized at engine.New[V, M].
//
// Cond and Update take both the receiver's current value and the
// incoming candidate. Spec §4.4 declares cond/update as one-place
// functions of the current value alone, but the worked connected-
// components scenario (spec §8, S2: "cond(v) = incoming < v, update =
// min") needs both operands to express a monotone relaxation; a
// one-place cond can't recover that comparison. The two-place form here
// is a strict superset -- a one-place algorithm just ignores the operand
// it doesn't need -- so every one-place scenario still embeds directly.
type Algorithm[V any, M any] interface {
	// Cond reports whether incoming should be allowed to overwrite current.
	Cond(current V, incoming V) bool
	// Update returns the value to commit given current and incoming.
	Update(current V, incoming V) V
	// Pack projects a source vertex value, and the weight of the edge it
	// is being proposed across, onto the wire representation. Unweighted
	// algorithms ignore weight.
	Pack(v V, weight float64) M
	// Unpack lifts a wire value back to a vertex value on receipt.
	Unpack(m M) V
}
