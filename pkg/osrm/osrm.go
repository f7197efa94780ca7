// Package osrm reads routing-graph files produced by osrm-extract.
//
// A file is a header followed by a sequence of typed sections. Sections are
// visited once, in file order, and the records of known sections (graph nodes
// and graph edges) are decoded lazily, one read per record. Memory use is a
// small read buffer no matter how large the file is.
//
// Two container encodings are understood: the compact section stream
// ("OSRN" header, tagged length-prefixed sections) and the tar archive that
// osrm-extract writes, where every archive member is a section.
package osrm

// Format constants must never change.
const (
	// Magic is the fingerprint that starts a section stream and the
	// fingerprint member of a tar archive.
	Magic = "OSRN"

	// CoordinatePrecision is the fixed-point scale of stored coordinates.
	CoordinatePrecision = 1e6

	headerSize        = 8
	sectionHeaderSize = 12
	tagSize           = 4

	tarMagicOffset = 257
	tarMagic       = "ustar"

	tarFingerprintName = "osrm_fingerprint.meta"
	tarMetaSuffix      = ".meta"
	tarMajorVersion    = 5
)

// Section stream tags.
const (
	TagNodes = "NODE"
	TagEdges = "EDGE"
)

// Tar member names holding graph records.
const (
	TarNodes = "/extractor/nodes"
	TarEdges = "/extractor/edges"
)

// Container selects how the byte stream is framed.
type Container uint8

const (
	ContainerAuto Container = iota
	ContainerSections
	ContainerTar
)

func (c Container) String() string {
	switch c {
	case ContainerAuto:
		return "auto"
	case ContainerSections:
		return "sections"
	case ContainerTar:
		return "tar"
	default:
		return "unknown"
	}
}

// ParseContainer maps a container name to its value.
func ParseContainer(s string) (Container, bool) {
	switch s {
	case "", "auto":
		return ContainerAuto, true
	case "sections", "stream":
		return ContainerSections, true
	case "tar":
		return ContainerTar, true
	default:
		return ContainerAuto, false
	}
}
