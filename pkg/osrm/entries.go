package osrm

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/samcharles93/osrmreader/internal/logger"
)

type entriesState uint8

const (
	stateSections entriesState = iota
	stateDone
	stateFailed
)

// Stats counts what an Entries iterator has seen so far.
type Stats struct {
	// Sections is the number of section descriptors scanned.
	Sections int
	// Entries is the number of entries yielded.
	Entries int
	// Skipped is the number of unrecognized sections passed over.
	Skipped int
	// Discarded is the number of payload bytes skipped without being read.
	Discarded int64
}

// Entries walks the sections of a file once, in order.
//
// Next skips whatever the caller left unread of the previous entry before it
// scans the next section, so every section starts at the exact offset its
// descriptor names. A format or I/O error is returned once; after that, and
// after the last section, Next returns io.EOF.
type Entries struct {
	c       container
	hdr     Header
	log     logger.Logger
	unknown bool

	state   entriesState
	gen     uint64
	cur     Section
	pending bool
	stats   Stats
}

// Header returns the validated file header.
func (e *Entries) Header() Header { return e.hdr }

// Offset returns the current stream offset.
func (e *Entries) Offset() int64 { return e.c.offset() }

// Stats returns the running counters.
func (e *Entries) Stats() Stats { return e.stats }

// Next returns the next recognized section. Earlier entries become stale.
func (e *Entries) Next() (Entry, error) {
	e.gen++
	if e.state != stateSections {
		return nil, io.EOF
	}

	if e.pending {
		e.pending = false
		if err := e.finish(e.cur); err != nil {
			return nil, e.fail(err)
		}
	}

	for {
		sec, err := e.c.next()
		if errors.Is(err, io.EOF) {
			e.state = stateDone
			e.log.Debug("end of stream", "offset", e.c.offset(), "sections", e.stats.Sections)
			return nil, io.EOF
		}
		if err != nil {
			return nil, e.fail(err)
		}
		e.stats.Sections++

		s, ok := dispatch(e.hdr, sec.Tag)
		if !ok {
			if e.unknown {
				return e.yield(sec, &Unknown{owner: e, gen: e.gen, sec: sec}), nil
			}
			e.stats.Skipped++
			e.log.Debug("skipping section", "tag", sec.Tag, "offset", sec.Offset, "length", sec.Length)
			if err := e.finish(sec); err != nil {
				return nil, e.fail(err)
			}
			continue
		}

		count, ok := s.count(sec)
		if !ok {
			return nil, e.fail(fmt.Errorf("%w: section %s is %d bytes, record width %d", ErrSectionLength, sec.Tag, sec.Length, s.width))
		}
		if want, ok := e.c.declaredCount(sec.Tag); ok && want != count {
			return nil, e.fail(fmt.Errorf("%w: section %s holds %d records, meta declares %d", ErrSectionLength, sec.Tag, count, want))
		}

		e.log.Debug("section", "tag", sec.Tag, "kind", s.kind, "offset", sec.Offset, "records", count)
		switch s.kind {
		case KindNodes:
			return e.yield(sec, newRecords(e, s.kind, sec, s.width, count, s.node)), nil
		case KindEdges:
			return e.yield(sec, newRecords(e, s.kind, sec, s.width, count, s.edge)), nil
		default:
			return nil, e.fail(fmt.Errorf("osrm: section %s has no decoder for kind %s", sec.Tag, s.kind))
		}
	}
}

// All ranges over the remaining entries, yielding a terminal error once.
func (e *Entries) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			ent, err := e.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(ent, err) || err != nil {
				return
			}
		}
	}
}

func (e *Entries) yield(sec Section, ent Entry) Entry {
	e.cur = sec
	e.pending = true
	e.stats.Entries++
	return ent
}

// finish moves the cursor to the end of sec, discarding unread payload.
func (e *Entries) finish(sec Section) error {
	pos := e.c.offset()
	if pos > sec.End() {
		return fmt.Errorf("%w: at %d, section %s ends at %d", ErrCursor, pos, sec.Tag, sec.End())
	}
	if pos < sec.End() {
		e.stats.Discarded += sec.End() - pos
		e.log.Debug("discarding unread payload", "tag", sec.Tag, "bytes", sec.End()-pos)
	}
	if err := e.c.skipTo(sec.End()); err != nil {
		return fmt.Errorf("osrm: finish section %s: %w", sec.Tag, err)
	}
	return nil
}

func (e *Entries) fail(err error) error {
	e.state = stateFailed
	e.log.Debug("entries failed", "offset", e.c.offset(), "error", err)
	return err
}
