package osrm

// Kind identifies the record schema of a section.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNodes
	KindEdges
)

func (k Kind) String() string {
	switch k {
	case KindNodes:
		return "nodes"
	case KindEdges:
		return "edges"
	default:
		return "unknown"
	}
}

// schema is one row of the tag table. Exactly one decoder is set, matching
// kind.
type schema struct {
	kind  Kind
	width int
	node  func([]byte) (Node, error)
	edge  func([]byte) (Edge, error)
}

func (s schema) count(sec Section) (uint64, bool) {
	if sec.Length%int64(s.width) != 0 {
		return 0, false
	}
	return uint64(sec.Length / int64(s.width)), true
}

type layoutKey struct {
	container Container
	version   uint32
}

var (
	nodesV1 = schema{kind: KindNodes, width: nodeWidthV1, node: decodeNodeV1}
	nodesV2 = schema{kind: KindNodes, width: nodeWidthV2, node: decodeNodeV2}
	edges   = schema{kind: KindEdges, width: edgeWidth, edge: decodeEdge}

	extractorEdges = schema{kind: KindEdges, width: edgeWidth, edge: decodeExtractorEdge}
)

// layouts is the authoritative tag table per container and version.
var layouts = map[layoutKey]map[string]schema{
	{ContainerSections, 1}: {
		TagNodes: nodesV1,
		TagEdges: edges,
	},
	{ContainerSections, 2}: {
		TagNodes: nodesV2,
		TagEdges: edges,
	},
	{ContainerTar, tarMajorVersion}: {
		TarNodes: nodesV1,
		TarEdges: extractorEdges,
	},
}

// supported reports whether a tag table exists for the header.
func supported(h Header) bool {
	_, ok := layouts[layoutKey{h.Container, h.Version}]
	return ok
}

// dispatch classifies a section tag under the header's layout.
func dispatch(h Header, tag string) (schema, bool) {
	s, ok := layouts[layoutKey{h.Container, h.Version}][tag]
	return s, ok
}
