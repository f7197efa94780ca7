// Package osrmtest builds small section-stream files for tests outside
// pkg/osrm. The tests inside pkg/osrm keep their own encoders in
// fixture_test.go, since importing this package from there would be a cycle.
package osrmtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/osrmreader/pkg/osrm"
)

// Builder accumulates sections of a version 1 or 2 section stream.
type Builder struct {
	version uint32
	buf     bytes.Buffer
}

// New starts a stream with the given header version.
func New(version uint32) *Builder {
	b := &Builder{version: version}
	b.buf.WriteString(osrm.Magic)
	_ = binary.Write(&b.buf, binary.LittleEndian, version)
	return b
}

// Section appends a raw section.
func (b *Builder) Section(tag string, payload []byte) *Builder {
	b.buf.WriteString(tag)
	_ = binary.Write(&b.buf, binary.LittleEndian, uint64(len(payload)))
	b.buf.Write(payload)
	return b
}

// Nodes appends a node section in the builder's version layout.
func (b *Builder) Nodes(nodes ...osrm.Node) *Builder {
	var out []byte
	for _, n := range nodes {
		out = binary.LittleEndian.AppendUint32(out, uint32(n.RawLongitude))
		out = binary.LittleEndian.AppendUint32(out, uint32(n.RawLatitude))
		out = binary.LittleEndian.AppendUint64(out, n.ID)
		if b.version >= 2 {
			out = binary.LittleEndian.AppendUint32(out, uint32(n.Flags))
		}
	}
	return b.Section(osrm.TagNodes, out)
}

// Edges appends an edge section.
func (b *Builder) Edges(edges ...osrm.Edge) *Builder {
	var out []byte
	for _, e := range edges {
		out = binary.LittleEndian.AppendUint32(out, e.Source)
		out = binary.LittleEndian.AppendUint32(out, e.Target)
		out = binary.LittleEndian.AppendUint32(out, e.Weight)
		out = binary.LittleEndian.AppendUint32(out, e.Duration)
		out = binary.LittleEndian.AppendUint32(out, e.Distance)
		out = binary.LittleEndian.AppendUint32(out, e.NameID)
		out = binary.LittleEndian.AppendUint16(out, uint16(e.Flags))
		out = append(out, make([]byte, 6)...)
	}
	return b.Section(osrm.TagEdges, out)
}

// Bytes returns a copy of the stream built so far.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// WriteFile writes the stream into a temp dir and returns its path.
func (b *Builder) WriteFile(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b.buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Graph returns the two-node, one-edge example graph.
func Graph() *Builder {
	return New(1).
		Nodes(
			osrm.Node{ID: 1, RawLongitude: 13_500_000, RawLatitude: 52_500_000},
			osrm.Node{ID: 2, RawLongitude: 13_600_000, RawLatitude: 52_600_000},
		).
		Edges(osrm.Edge{Source: 0, Target: 1, Weight: 120, Flags: osrm.EdgeForward})
}
