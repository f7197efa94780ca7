// Package geojson converts the edges of a routing graph into a GeoJSON
// FeatureCollection of two-point LineStrings.
package geojson

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	json "github.com/goccy/go-json"

	"github.com/samcharles93/osrmreader/internal/logger"
	"github.com/samcharles93/osrmreader/pkg/osrm"
)

// Options tune a conversion.
type Options struct {
	// Limit stops after this many features. Zero means no limit.
	Limit int
	// Properties adds source, target and weight to every feature.
	Properties bool
	Logger     logger.Logger
}

// Result counts what a conversion did.
type Result struct {
	Nodes    int `json:"nodes"`
	Features int `json:"features"`
	// Skipped counts records that failed to decode, and edges that touch
	// such a node.
	Skipped int `json:"skipped"`
}

type geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type properties struct {
	Source uint32 `json:"source"`
	Target uint32 `json:"target"`
	Weight uint32 `json:"weight"`
}

type feature struct {
	Type       string      `json:"type"`
	Geometry   geometry    `json:"geometry"`
	Properties *properties `json:"properties,omitempty"`
}

// maxPreGrow bounds the node slice reserved ahead of reading a section.
const maxPreGrow = 1 << 20

// point keeps raw fixed-point coordinates to save space.
type point struct {
	lon, lat int32
	ok       bool
}

// Convert streams every edge of entries to w. Nodes are kept in memory by
// index, so node sections must come before the edges that use them.
func Convert(ctx context.Context, entries *osrm.Entries, w io.Writer, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	bw := bufio.NewWriter(w)
	var (
		res    Result
		points []point
		first  = true
	)

	if _, err := bw.WriteString(`{"type":"FeatureCollection","features":[`); err != nil {
		return res, err
	}

loop:
	for ent, err := range entries.All() {
		if err != nil {
			return res, err
		}
		switch e := ent.(type) {
		case *osrm.Nodes:
			// Len comes from the file; an unsized reader cannot vouch for it.
			points = slices.Grow(points, int(min(e.Len(), maxPreGrow)))
			for n, err := range e.All() {
				if err != nil {
					if !errors.Is(err, osrm.ErrDecode) {
						return res, err
					}
					log.Warn("skipping node", "error", err)
					res.Skipped++
					points = append(points, point{})
					continue
				}
				points = append(points, point{lon: n.RawLongitude, lat: n.RawLatitude, ok: true})
				res.Nodes++
			}

		case *osrm.Edges:
			for edge, err := range e.All() {
				if err != nil {
					if !errors.Is(err, osrm.ErrDecode) {
						return res, err
					}
					log.Warn("skipping edge", "error", err)
					res.Skipped++
					continue
				}
				if res.Features%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return res, err
					}
				}

				src, dst, err := lookup(points, edge)
				if err != nil {
					return res, err
				}
				if !src.ok || !dst.ok {
					res.Skipped++
					continue
				}

				f := feature{
					Type: "Feature",
					Geometry: geometry{
						Type:        "LineString",
						Coordinates: [][2]float64{degrees(src), degrees(dst)},
					},
				}
				if opts.Properties {
					f.Properties = &properties{Source: edge.Source, Target: edge.Target, Weight: edge.Weight}
				}
				raw, err := json.Marshal(f)
				if err != nil {
					return res, err
				}
				if !first {
					if err := bw.WriteByte(','); err != nil {
						return res, err
					}
				}
				first = false
				if err := bw.WriteByte('\n'); err != nil {
					return res, err
				}
				if _, err := bw.Write(raw); err != nil {
					return res, err
				}
				res.Features++

				if opts.Limit > 0 && res.Features >= opts.Limit {
					break loop
				}
			}
		}
	}

	if _, err := bw.WriteString("\n]}\n"); err != nil {
		return res, err
	}
	return res, bw.Flush()
}

func lookup(points []point, e osrm.Edge) (point, point, error) {
	if int(e.Source) >= len(points) || int(e.Target) >= len(points) {
		return point{}, point{}, fmt.Errorf("geojson: edge %d->%d references a node beyond the %d read", e.Source, e.Target, len(points))
	}
	return points[e.Source], points[e.Target], nil
}

func degrees(p point) [2]float64 {
	return [2]float64{float64(p.lon) / osrm.CoordinatePrecision, float64(p.lat) / osrm.CoordinatePrecision}
}
