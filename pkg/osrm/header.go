package osrm

import (
	"encoding/binary"
	"fmt"
)

// Header is the validated file fingerprint.
//
// For section streams Version is the stream version. For tar archives Version
// is the fingerprint's major version and Minor/Patch are filled in too.
type Header struct {
	Container Container
	Version   uint32
	Minor     uint8
	Patch     uint8
}

func (h Header) String() string {
	if h.Container == ContainerTar {
		return fmt.Sprintf("%s v%d.%d.%d", h.Container, h.Version, h.Minor, h.Patch)
	}
	return fmt.Sprintf("%s v%d", h.Container, h.Version)
}

func decodeStreamHeader(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, ErrBadFingerprint
	}
	if string(b[:tagSize]) != Magic {
		return Header{}, fmt.Errorf("%w: magic %q", ErrBadFingerprint, b[:tagSize])
	}
	return Header{
		Container: ContainerSections,
		Version:   binary.LittleEndian.Uint32(b[4:8]),
	}, nil
}

// decodeTarFingerprint parses the 8-byte fingerprint member:
// "OSRN" major minor patch checksum. The checksum is not verified.
func decodeTarFingerprint(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, fmt.Errorf("%w: fingerprint member is %d bytes", ErrBadFingerprint, len(b))
	}
	if string(b[:tagSize]) != Magic {
		return Header{}, fmt.Errorf("%w: magic %q", ErrBadFingerprint, b[:tagSize])
	}
	return Header{
		Container: ContainerTar,
		Version:   uint32(b[4]),
		Minor:     b[5],
		Patch:     b[6],
	}, nil
}
