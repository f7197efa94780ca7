package osrm

import (
	"archive/tar"
	"bytes"
	"encoding/binary"
	"testing"
)

// Test-only encoders for the formats the package reads.
//
// internal/osrmtest builds the same section streams for other packages. It
// imports osrm, so these in-package tests cannot use it without a cycle, and
// they also need tar archives and malformed payloads that osrmtest does not
// produce.

type rawSection struct {
	tag     string
	payload []byte
}

func streamFile(version uint32, sections ...rawSection) []byte {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	_ = binary.Write(&buf, binary.LittleEndian, version)
	for _, s := range sections {
		buf.WriteString(s.tag)
		_ = binary.Write(&buf, binary.LittleEndian, uint64(len(s.payload)))
		buf.Write(s.payload)
	}
	return buf.Bytes()
}

func nodesV1Payload(nodes ...Node) []byte {
	out := make([]byte, 0, len(nodes)*nodeWidthV1)
	for _, n := range nodes {
		out = binary.LittleEndian.AppendUint32(out, uint32(n.RawLongitude))
		out = binary.LittleEndian.AppendUint32(out, uint32(n.RawLatitude))
		out = binary.LittleEndian.AppendUint64(out, n.ID)
	}
	return out
}

func nodesV2Payload(nodes ...Node) []byte {
	out := make([]byte, 0, len(nodes)*nodeWidthV2)
	for _, n := range nodes {
		out = append(out, nodesV1Payload(n)...)
		out = binary.LittleEndian.AppendUint32(out, uint32(n.Flags))
	}
	return out
}

func edgesPayload(edges ...Edge) []byte {
	out := make([]byte, 0, len(edges)*edgeWidth)
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
	return out
}

type tarMember struct {
	name string
	data []byte
}

func tarFile(t *testing.T, members ...tarMember) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		hdr := &tar.Header{
			Name:     m.name,
			Mode:     0o644,
			Size:     int64(len(m.data)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write tar header %s: %v", m.name, err)
		}
		if _, err := tw.Write(m.data); err != nil {
			t.Fatalf("write tar member %s: %v", m.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	return buf.Bytes()
}

func tarFingerprint(major uint8) tarMember {
	return tarMember{name: tarFingerprintName, data: []byte{'O', 'S', 'R', 'N', major, 26, 0, 0}}
}

func tarCount(name string, n uint64) tarMember {
	return tarMember{name: name + tarMetaSuffix, data: binary.LittleEndian.AppendUint64(nil, n)}
}

// scenarioNodes and scenarioEdges are the two-node, one-edge graph used
// across the tests.
var (
	scenarioNodes = []Node{
		{ID: 1, RawLongitude: 13_500_000, RawLatitude: 52_500_000},
		{ID: 2, RawLongitude: 13_600_000, RawLatitude: 52_600_000},
	}
	scenarioEdges = []Edge{
		{Source: 0, Target: 1, Weight: 120, Flags: EdgeForward},
	}
)

func scenarioFile() []byte {
	return streamFile(1,
		rawSection{TagNodes, nodesV1Payload(scenarioNodes...)},
		rawSection{TagEdges, edgesPayload(scenarioEdges...)},
	)
}

// opaqueReader hides Seek/Len/Size so the stream length is unknown.
type opaqueReader struct {
	r *bytes.Reader
}

func (o opaqueReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func opaque(b []byte) opaqueReader {
	return opaqueReader{r: bytes.NewReader(b)}
}
