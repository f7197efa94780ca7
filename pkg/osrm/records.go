package osrm

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Entry is one recognized section, yielded by Entries.Next. The concrete type
// is *Nodes, *Edges or, when unknown sections are requested, *Unknown.
type Entry interface {
	Kind() Kind
	Section() Section
	entry()
}

// Nodes is the record sequence of a node section.
type Nodes = Records[Node]

// Edges is the record sequence of an edge section.
type Edges = Records[Edge]

// Records is a forward-only, finite sequence of fixed-width records. It reads
// straight from the underlying stream and is only valid until the next call
// to Entries.Next; after that every call returns ErrStaleEntry.
//
// Abandoning a sequence early is always safe: Entries skips whatever was left
// unread.
type Records[T any] struct {
	owner  *Entries
	gen    uint64
	kind   Kind
	sec    Section
	decode func([]byte) (T, error)
	buf    []byte
	count  uint64
	index  uint64
	done   bool
}

func newRecords[T any](owner *Entries, kind Kind, sec Section, width int, count uint64, decode func([]byte) (T, error)) *Records[T] {
	return &Records[T]{
		owner:  owner,
		gen:    owner.gen,
		kind:   kind,
		sec:    sec,
		decode: decode,
		buf:    make([]byte, width),
		count:  count,
	}
}

func (r *Records[T]) entry() {}

func (r *Records[T]) Kind() Kind { return r.kind }

func (r *Records[T]) Section() Section { return r.sec }

// Len is the number of records in the section.
func (r *Records[T]) Len() uint64 { return r.count }

// Remaining is the number of records not yet read.
func (r *Records[T]) Remaining() uint64 {
	if r.done {
		return 0
	}
	return r.count - r.index
}

// Next decodes the next record. It returns io.EOF after the last record.
//
// A record that does not decode yields a *DecodeError; the sequence can keep
// going. A read failure is returned once and ends the sequence.
func (r *Records[T]) Next() (T, error) {
	var zero T
	if r.gen != r.owner.gen {
		return zero, ErrStaleEntry
	}
	if r.done || r.index >= r.count {
		return zero, io.EOF
	}

	idx := r.index
	off := r.sec.Offset + int64(idx)*int64(len(r.buf))
	if err := readRecord(r.owner.c, r.buf); err != nil {
		r.done = true
		return zero, fmt.Errorf("osrm: read %s record %d at offset %d: %w", r.sec.Tag, idx, off, err)
	}
	r.index++

	v, err := r.decode(r.buf)
	if err != nil {
		return zero, &DecodeError{Tag: r.sec.Tag, Index: idx, Offset: off, Err: err}
	}
	return v, nil
}

// All ranges over the remaining records. Decode errors are yielded alongside
// the zero record and iteration continues; any other error is yielded once
// and ends the range.
func (r *Records[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(v, err) {
				return
			}
			if err != nil && !errors.Is(err, ErrDecode) {
				return
			}
		}
	}
}

// Unknown exposes the raw payload of a section with no known schema. It is
// only yielded when the reader was built WithUnknownSections(true).
type Unknown struct {
	owner *Entries
	gen   uint64
	sec   Section
}

func (u *Unknown) entry() {}

func (u *Unknown) Kind() Kind { return KindUnknown }

func (u *Unknown) Section() Section { return u.sec }

// Read reads from the section payload, returning io.EOF at its end.
func (u *Unknown) Read(p []byte) (int, error) {
	if u.gen != u.owner.gen {
		return 0, ErrStaleEntry
	}
	remaining := u.sec.End() - u.owner.c.offset()
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := u.owner.c.payload().Read(p)
	if errors.Is(err, io.EOF) && int64(n) < remaining {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
