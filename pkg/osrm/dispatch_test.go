package osrm

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestDispatchTable(t *testing.T) {
	t.Parallel()

	v1 := Header{Container: ContainerSections, Version: 1}
	v2 := Header{Container: ContainerSections, Version: 2}
	tr := Header{Container: ContainerTar, Version: 5}

	tests := []struct {
		hdr   Header
		tag   string
		kind  Kind
		width int
		ok    bool
	}{
		{v1, TagNodes, KindNodes, nodeWidthV1, true},
		{v1, TagEdges, KindEdges, edgeWidth, true},
		{v2, TagNodes, KindNodes, nodeWidthV2, true},
		{v2, TagEdges, KindEdges, edgeWidth, true},
		{tr, TarNodes, KindNodes, nodeWidthV1, true},
		{tr, TarEdges, KindEdges, edgeWidth, true},
		{v1, "XTRA", KindUnknown, 0, false},
		{v1, TarNodes, KindUnknown, 0, false},
		{tr, TagNodes, KindUnknown, 0, false},
		{Header{Container: ContainerSections, Version: 3}, TagNodes, KindUnknown, 0, false},
	}
	for _, tc := range tests {
		s, ok := dispatch(tc.hdr, tc.tag)
		if ok != tc.ok || s.kind != tc.kind || s.width != tc.width {
			t.Errorf("dispatch(%s, %q): got kind=%v width=%d ok=%v", tc.hdr, tc.tag, s.kind, s.width, ok)
		}
		if ok && (s.kind == KindNodes) != (s.node != nil) {
			t.Errorf("dispatch(%s, %q): decoder does not match kind", tc.hdr, tc.tag)
		}
	}
}

func TestLayoutDecodersMatchKind(t *testing.T) {
	t.Parallel()

	for key, tags := range layouts {
		for tag, s := range tags {
			switch s.kind {
			case KindNodes:
				if s.node == nil || s.edge != nil {
					t.Errorf("%v %q: node schema needs exactly a node decoder", key, tag)
				}
			case KindEdges:
				if s.edge == nil || s.node != nil {
					t.Errorf("%v %q: edge schema needs exactly an edge decoder", key, tag)
				}
			default:
				t.Errorf("%v %q: kind %s has no record decoder", key, tag, s.kind)
			}
			if s.width <= 0 {
				t.Errorf("%v %q: width %d", key, tag, s.width)
			}
		}
	}
}

func TestSchemaCount(t *testing.T) {
	t.Parallel()

	if n, ok := edges.count(Section{Length: 3 * edgeWidth}); !ok || n != 3 {
		t.Fatalf("count mismatch: got %d ok=%v", n, ok)
	}
	if _, ok := nodesV1.count(Section{Length: nodeWidthV1 + 1}); ok {
		t.Fatal("expected misaligned length to be rejected")
	}
	if n, ok := nodesV2.count(Section{}); !ok || n != 0 {
		t.Fatalf("empty section: got %d ok=%v", n, ok)
	}
}

func TestNodeEncodingLittleEndian(t *testing.T) {
	t.Parallel()

	raw := nodesV2Payload(Node{ID: 0x0102030405060708, RawLongitude: -13_500_000, RawLatitude: 52_500_000, Flags: NodeTrafficSignal})
	if raw[8] != 0x08 || raw[15] != 0x01 {
		t.Fatalf("node id is not little-endian: %x", raw[8:16])
	}
	n, err := decodeNodeV2(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n.Longitude() != -13.5 || n.Latitude() != 52.5 || !n.TrafficSignal() || n.Barrier() {
		t.Fatalf("node mismatch: %+v", n)
	}
}

func TestCoordinateBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lon, lat int32
		ok       bool
	}{
		{180_000_000, 90_000_000, true},
		{-180_000_000, -90_000_000, true},
		{180_000_001, 0, false},
		{0, -90_000_001, false},
	}
	for _, tc := range tests {
		_, err := decodeNodeV1(nodesV1Payload(Node{RawLongitude: tc.lon, RawLatitude: tc.lat}))
		if (err == nil) != tc.ok {
			t.Errorf("(%d, %d): got err=%v want ok=%v", tc.lon, tc.lat, err, tc.ok)
		}
		if err != nil && !errors.Is(err, ErrCoordinateRange) {
			t.Errorf("(%d, %d): got %v want ErrCoordinateRange", tc.lon, tc.lat, err)
		}
	}
}

func TestEdgeFields(t *testing.T) {
	t.Parallel()

	want := Edge{Source: 3, Target: 4, Weight: 55, Duration: 50, Distance: 12_345, NameID: 9, Flags: EdgeForward | EdgeRestricted}
	got, err := decodeEdge(edgesPayload(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("edge mismatch: got %+v want %+v", got, want)
	}
	if got.DistanceMeters() != 123.45 || got.DurationSeconds() != 5 || !got.Restricted() || got.Shortcut() {
		t.Fatalf("edge accessors: %+v", got)
	}

	raw := edgesPayload(want)
	binary.LittleEndian.PutUint16(raw[24:26], uint16(EdgeShortcut)|1<<15)
	if _, err := decodeEdge(raw); !errors.Is(err, ErrReservedBits) {
		t.Fatalf("reserved flag: got %v want ErrReservedBits", err)
	}
}

func TestParseContainer(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Container{"": ContainerAuto, "auto": ContainerAuto, "sections": ContainerSections, "tar": ContainerTar} {
		got, ok := ParseContainer(in)
		if !ok || got != want {
			t.Errorf("ParseContainer(%q): got %v ok=%v", in, got, ok)
		}
		if in != "" && got.String() != in {
			t.Errorf("String round trip: got %q want %q", got.String(), in)
		}
	}
	if _, ok := ParseContainer("zip"); ok {
		t.Fatal("expected unknown container to be rejected")
	}
}
