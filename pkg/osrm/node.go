package osrm

import (
	"encoding/binary"
	"fmt"
)

const (
	nodeWidthV1 = 16
	nodeWidthV2 = 20

	maxRawLongitude = 180 * CoordinatePrecision
	maxRawLatitude  = 90 * CoordinatePrecision
)

// NodeFlags are the per-node bits present from stream version 2.
type NodeFlags uint32

const (
	NodeBarrier NodeFlags = 1 << iota
	NodeTrafficSignal

	nodeFlagsKnown = NodeBarrier | NodeTrafficSignal
)

// Node is a 2D point with fixed-point coordinates.
type Node struct {
	// ID is usually the OSM id of the original node.
	ID uint64
	// RawLongitude is longitude × CoordinatePrecision.
	RawLongitude int32
	// RawLatitude is latitude × CoordinatePrecision.
	RawLatitude int32
	Flags       NodeFlags
}

// Longitude returns the longitude in decimal degrees.
func (n Node) Longitude() float64 {
	return float64(n.RawLongitude) / CoordinatePrecision
}

// Latitude returns the latitude in decimal degrees.
func (n Node) Latitude() float64 {
	return float64(n.RawLatitude) / CoordinatePrecision
}

// Barrier reports whether passage through the node is blocked.
func (n Node) Barrier() bool { return n.Flags&NodeBarrier != 0 }

// TrafficSignal reports whether the node carries a traffic light.
func (n Node) TrafficSignal() bool { return n.Flags&NodeTrafficSignal != 0 }

func decodeNodeV1(b []byte) (Node, error) {
	n := Node{
		RawLongitude: int32(binary.LittleEndian.Uint32(b[0:4])),
		RawLatitude:  int32(binary.LittleEndian.Uint32(b[4:8])),
		ID:           binary.LittleEndian.Uint64(b[8:16]),
	}
	if err := checkCoordinate(n); err != nil {
		return n, err
	}
	return n, nil
}

func decodeNodeV2(b []byte) (Node, error) {
	n, err := decodeNodeV1(b)
	if err != nil {
		return n, err
	}
	n.Flags = NodeFlags(binary.LittleEndian.Uint32(b[16:20]))
	if extra := n.Flags &^ nodeFlagsKnown; extra != 0 {
		return n, fmt.Errorf("%w: node flags %#x", ErrReservedBits, uint32(extra))
	}
	return n, nil
}

func checkCoordinate(n Node) error {
	if n.RawLongitude > maxRawLongitude || n.RawLongitude < -maxRawLongitude {
		return fmt.Errorf("%w: longitude %d", ErrCoordinateRange, n.RawLongitude)
	}
	if n.RawLatitude > maxRawLatitude || n.RawLatitude < -maxRawLatitude {
		return fmt.Errorf("%w: latitude %d", ErrCoordinateRange, n.RawLatitude)
	}
	return nil
}
