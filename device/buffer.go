package device

import (
	"unsafe"

	"github.com/notargets/gocca"

	"github.com/bspgraph/bsp/enforce"
)

// Buffer is a paired host/device allocation of n elements of type T, the
// device-buffer primitive of the engine (spec §4.1). No implicit
// synchronization happens between the two sides except through Persist
// and Upload; callers are responsible for issuing one before reading the
// side they need.
type Buffer[T any] struct {
	dev  *Device
	mem  *gocca.OCCAMemory
	host []T
}

func elemSize[T any]() int64 {
	var z T
	return int64(unsafe.Sizeof(z))
}

// Resize allocates both the host mirror and the device-resident copy for n
// elements, discarding any prior contents.
func (b *Buffer[T]) Resize(dev *Device, n int) {
	b.dev = dev
	b.host = make([]T, n)
	if n == 0 {
		b.mem = dev.Raw().Malloc(elemSize[T](), nil)
		return
	}
	b.mem = dev.Raw().Malloc(int64(n)*elemSize[T](), unsafe.Pointer(&b.host[0]))
	enforce.ENFORCE(b.mem != nil, "device: allocation failed for", n, "elements")
}

// Len reports the element count of both sides of the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.host)
}

// Host returns the host-side mirror. Only valid to read after a Persist
// that happened-after the device writes of interest.
func (b *Buffer[T]) Host() []T {
	return b.host
}

// Upload pushes the current host-side contents to the device (host->device).
func (b *Buffer[T]) Upload() {
	if len(b.host) == 0 {
		return
	}
	b.mem.CopyFrom(unsafe.Pointer(&b.host[0]), int64(len(b.host))*elemSize[T]())
}

// Persist copies device-resident state back into the host mirror
// (device->host). After it returns, the host side reflects the device
// state as of this call's issue.
func (b *Buffer[T]) Persist() {
	if len(b.host) == 0 {
		return
	}
	b.mem.CopyTo(unsafe.Pointer(&b.host[0]), int64(len(b.host))*elemSize[T]())
}

func (b *Buffer[T]) Free() {
	if b.mem != nil {
		b.mem.Free()
	}
}
