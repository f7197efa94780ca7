// Package inspect summarizes the sections of a routing-graph file in one pass.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/samcharles93/osrmreader/pkg/osrm"
)

// Section is one line of the section listing.
type Section struct {
	Tag          string `json:"tag"`
	Kind         string `json:"kind"`
	Offset       int64  `json:"offset"`
	Length       int64  `json:"length"`
	Records      uint64 `json:"records"`
	DecodeErrors uint64 `json:"decode_errors,omitempty"`
}

// Bounds is the bounding box of all decoded nodes, in degrees.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Summary is what one pass over a file found.
type Summary struct {
	Header       string     `json:"header"`
	Container    string     `json:"container"`
	Version      uint32     `json:"version"`
	Sections     []Section  `json:"sections"`
	Nodes        uint64     `json:"nodes"`
	Edges        uint64     `json:"edges"`
	DecodeErrors uint64     `json:"decode_errors"`
	Bounds       *Bounds    `json:"bounds,omitempty"`
	Bytes        int64      `json:"bytes"`
	Stats        osrm.Stats `json:"-"`
}

// Summarize drains every entry of r. Unknown sections are listed only if r
// was built WithUnknownSections(true).
func Summarize(r *osrm.Reader) (*Summary, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}

	hdr := entries.Header()
	s := &Summary{
		Header:    hdr.String(),
		Container: hdr.Container.String(),
		Version:   hdr.Version,
	}
	bounds := Bounds{MinLon: math.Inf(1), MinLat: math.Inf(1), MaxLon: math.Inf(-1), MaxLat: math.Inf(-1)}

	for ent, err := range entries.All() {
		if err != nil {
			return nil, err
		}
		sec := ent.Section()
		row := Section{Tag: sec.Tag, Kind: ent.Kind().String(), Offset: sec.Offset, Length: sec.Length}

		switch e := ent.(type) {
		case *osrm.Nodes:
			row.Records = e.Len()
			for n, err := range e.All() {
				if err != nil {
					if !errors.Is(err, osrm.ErrDecode) {
						return nil, err
					}
					row.DecodeErrors++
					continue
				}
				s.Nodes++
				bounds.MinLon = min(bounds.MinLon, n.Longitude())
				bounds.MinLat = min(bounds.MinLat, n.Latitude())
				bounds.MaxLon = max(bounds.MaxLon, n.Longitude())
				bounds.MaxLat = max(bounds.MaxLat, n.Latitude())
			}
		case *osrm.Edges:
			row.Records = e.Len()
			for _, err := range e.All() {
				if err != nil {
					if !errors.Is(err, osrm.ErrDecode) {
						return nil, err
					}
					row.DecodeErrors++
					continue
				}
				s.Edges++
			}
		}
		s.DecodeErrors += row.DecodeErrors
		s.Sections = append(s.Sections, row)
	}

	if s.Nodes > 0 {
		s.Bounds = &bounds
	}
	s.Bytes = entries.Offset()
	s.Stats = entries.Stats()
	return s, nil
}

// Write prints the summary for humans.
func (s *Summary) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Header: %s\n", s.Header)
	fmt.Fprintf(&b, "Size:   %s (%d bytes)\n", humanize.Bytes(uint64(max(s.Bytes, 0))), s.Bytes)

	fmt.Fprintf(&b, "\n%-24s %-8s %12s %12s %12s\n", "section", "kind", "offset", "length", "records")
	for _, sec := range s.Sections {
		records := "-"
		if sec.Kind != osrm.KindUnknown.String() {
			records = humanize.Comma(int64(sec.Records))
		}
		fmt.Fprintf(&b, "%-24s %-8s %12d %12s %12s\n", sec.Tag, sec.Kind, sec.Offset, humanize.IBytes(uint64(sec.Length)), records)
	}

	fmt.Fprintf(&b, "\nnodes:         %s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(&b, "edges:         %s\n", humanize.Comma(int64(s.Edges)))
	if s.DecodeErrors > 0 {
		fmt.Fprintf(&b, "decode errors: %s\n", humanize.Comma(int64(s.DecodeErrors)))
	}
	if s.Stats.Skipped > 0 {
		fmt.Fprintf(&b, "skipped:       %d sections\n", s.Stats.Skipped)
	}
	if s.Bounds != nil {
		fmt.Fprintf(&b, "bounds:        [%.6f, %.6f] - [%.6f, %.6f]\n", s.Bounds.MinLon, s.Bounds.MinLat, s.Bounds.MaxLon, s.Bounds.MaxLat)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
