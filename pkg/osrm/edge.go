package osrm

import (
	"encoding/binary"
	"fmt"
)

const edgeWidth = 32

// EdgeFlags hold direction, access and shortcut bits.
type EdgeFlags uint16

const (
	EdgeForward EdgeFlags = 1 << iota
	EdgeBackward
	EdgeShortcut
	EdgeRestricted

	edgeFlagsKnown = EdgeForward | EdgeBackward | EdgeShortcut | EdgeRestricted
)

// Edge connects two nodes.
//
// Nodes are referenced by index, the order in which they are stored. The
// index should not be confused with the node ID.
type Edge struct {
	Source uint32
	Target uint32
	// Weight and Duration are in deciseconds.
	Weight   uint32
	Duration uint32
	// Distance is in centimetres.
	Distance uint32
	NameID   uint32
	Flags    EdgeFlags
}

// Forward reports whether the edge may be travelled source to target.
func (e Edge) Forward() bool { return e.Flags&EdgeForward != 0 }

// Backward reports whether the edge may be travelled target to source.
func (e Edge) Backward() bool { return e.Flags&EdgeBackward != 0 }

// Shortcut reports a contracted edge that stands for a path.
func (e Edge) Shortcut() bool { return e.Flags&EdgeShortcut != 0 }

// Restricted reports an edge with access restrictions.
func (e Edge) Restricted() bool { return e.Flags&EdgeRestricted != 0 }

// DistanceMeters returns the distance in metres.
func (e Edge) DistanceMeters() float64 {
	return float64(e.Distance) / 100
}

// DurationSeconds returns the duration in seconds.
func (e Edge) DurationSeconds() float64 {
	return float64(e.Duration) / 10
}

func decodeEdge(b []byte) (Edge, error) {
	e := Edge{
		Source:   binary.LittleEndian.Uint32(b[0:4]),
		Target:   binary.LittleEndian.Uint32(b[4:8]),
		Weight:   binary.LittleEndian.Uint32(b[8:12]),
		Duration: binary.LittleEndian.Uint32(b[12:16]),
		Distance: binary.LittleEndian.Uint32(b[16:20]),
		NameID:   binary.LittleEndian.Uint32(b[20:24]),
		Flags:    EdgeFlags(binary.LittleEndian.Uint16(b[24:26])),
	}
	if extra := e.Flags &^ edgeFlagsKnown; extra != 0 {
		return e, fmt.Errorf("%w: edge flags %#x", ErrReservedBits, uint16(extra))
	}
	for i, v := range b[26:edgeWidth] {
		if v != 0 {
			return e, fmt.Errorf("%w: reserved byte %d is %#x", ErrReservedBits, 26+i, v)
		}
	}
	return e, nil
}

// decodeExtractorEdge reads the leading fields of an osrm-extract edge. The
// trailing bytes are engine private and are left alone.
func decodeExtractorEdge(b []byte) (Edge, error) {
	return Edge{
		Source:   binary.LittleEndian.Uint32(b[0:4]),
		Target:   binary.LittleEndian.Uint32(b[4:8]),
		Weight:   binary.LittleEndian.Uint32(b[8:12]),
		Duration: binary.LittleEndian.Uint32(b[12:16]),
	}, nil
}
