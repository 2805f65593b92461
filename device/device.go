// Package device wraps the OCCA device abstraction (github.com/notargets/gocca)
// that backs every device-resident allocation in the engine: a paired
// host/device buffer with an explicit persist (device->host) operation and
// no implicit synchronization otherwise.
package device

import (
	"fmt"

	"github.com/notargets/gocca"

	"github.com/bspgraph/bsp/enforce"
)

// Device is one accelerator (or emulated) device slot. One Partition owns
// exactly one Device.
type Device struct {
	Id  int
	occ *gocca.OCCADevice
}

// Open opens a device under the requested OCCA mode ("CUDA", "HIP",
// "OpenMP", "Serial", ...), falling back to Serial if the requested mode
// is unavailable on this machine. Device allocation failure is fatal per
// the engine's error handling policy: there is no partial-failure path.
func Open(mode string, id int) *Device {
	occ, err := gocca.NewDevice(fmt.Sprintf(`{"mode": "%s", "device_id": %d}`, mode, id))
	if err != nil {
		occ, err = gocca.NewDevice(`{"mode": "Serial"}`)
		enforce.ENFORCE(err, "device: fallback to Serial mode failed", err)
	}
	return &Device{Id: id, occ: occ}
}

func (d *Device) Close() {
	d.occ.Free()
}

// Raw exposes the underlying OCCA device for buffer and kernel construction.
func (d *Device) Raw() *gocca.OCCADevice {
	return d.occ
}
