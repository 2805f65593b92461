// Package ingest reads a plain edge-list file and partitions it into the
// per-device Subgraphs the engine expects (spec §6.1's "external,
// out-of-scope ingestion pipeline" made concrete). Grounded on this
// codebase's own edge-list scanning idiom: a scanner over whitespace
// separated "src dst [weight]" lines, "#"-prefixed lines skipped.
package ingest

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/bspgraph/bsp/enforce"
)

// Edge is one raw, unpartitioned edge as read from the input file.
type Edge struct {
	Src, Dst uint32
	Weight   float64
}

// EdgeList is the whole graph before partitioning: every edge plus the
// raw-id -> dense-index map used to build CSR offsets later.
type EdgeList struct {
	Edges      []Edge
	VertexMap  map[uint32]uint32 // raw id -> dense local index [0, len(VertexMap))
	RawIds     []uint32          // dense index -> raw id, the inverse of VertexMap
	Undirected bool
}

// ReadEdgeList scans graphPath line by line. Each non-comment line is
// "src dst" or "src dst weight"; anything else is a malformed input and
// is fatal (spec §7: malformed input is the caller's responsibility, not
// a recoverable engine condition).
func ReadEdgeList(graphPath string, undirected bool) *EdgeList {
	file, err := os.Open(graphPath)
	enforce.ENFORCE(err)
	defer file.Close()

	el := &EdgeList{
		VertexMap:  make(map[uint32]uint32),
		Undirected: undirected,
	}

	intern := func(raw uint32) uint32 {
		if idx, ok := el.VertexMap[raw]; ok {
			return idx
		}
		idx := uint32(len(el.VertexMap))
		el.VertexMap[raw] = idx
		el.RawIds = append(el.RawIds, raw)
		return idx
	}

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || len(strings.TrimSpace(line)) == 0 {
			continue
		}
		fields := strings.Fields(line)
		enforce.ENFORCE(len(fields) == 2 || len(fields) == 3, "ingest: malformed edge line:", line)

		srcRaw, err := strconv.Atoi(fields[0])
		enforce.ENFORCE(err)
		dstRaw, err := strconv.Atoi(fields[1])
		enforce.ENFORCE(err)

		weight := 1.0
		if len(fields) == 3 {
			weight, err = strconv.ParseFloat(fields[2], 64)
			enforce.ENFORCE(err)
		}

		src := intern(uint32(srcRaw))
		dst := intern(uint32(dstRaw))
		el.Edges = append(el.Edges, Edge{Src: src, Dst: dst, Weight: weight})
		if undirected {
			el.Edges = append(el.Edges, Edge{Src: dst, Dst: src, Weight: weight})
		}
	}
	enforce.ENFORCE(scanner.Err())

	return el
}

// VertexCount is the number of distinct vertices seen.
func (el *EdgeList) VertexCount() int { return len(el.RawIds) }
