package osrm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// container frames the byte stream into a header and sections.
//
// payload returns the reader positioned inside the current section. Reads
// through it and skipTo are the only ways the cursor moves within a section.
type container interface {
	readHeader() (Header, error)
	next() (Section, error)
	payload() io.Reader
	skipTo(off int64) error
	offset() int64
	declaredCount(tag string) (uint64, bool)
}

// cursor counts every byte pulled from the source. size is -1 when the total
// stream length is unknown.
type cursor struct {
	r    *bufio.Reader
	off  int64
	size int64
}

func newCursor(rd io.Reader, size int64) *cursor {
	return &cursor{
		r:    bufio.NewReader(rd),
		size: size,
	}
}

func (c *cursor) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.off += int64(n)
	return n, err
}

func (c *cursor) readFull(p []byte) error {
	n, err := io.ReadFull(c.r, p)
	c.off += int64(n)
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (c *cursor) discard(n int64) error {
	const maxStep = 1 << 30
	for n > 0 {
		step := min(n, maxStep)
		d, err := c.r.Discard(int(step))
		c.off += int64(d)
		n -= int64(d)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// sniff picks the container from the leading bytes without consuming them.
func (c *cursor) sniff() (Container, error) {
	if b, err := c.r.Peek(tagSize); err == nil && string(b) == Magic {
		return ContainerSections, nil
	}
	if b, err := c.r.Peek(tarMagicOffset + len(tarMagic)); err == nil && string(b[tarMagicOffset:]) == tarMagic {
		return ContainerTar, nil
	}
	return ContainerAuto, fmt.Errorf("%w: unrecognized container", ErrBadFingerprint)
}

// streamScanner frames the native section stream.
type streamScanner struct {
	c *cursor
}

func newStreamScanner(c *cursor) *streamScanner {
	return &streamScanner{c: c}
}

func (s *streamScanner) readHeader() (Header, error) {
	var b [headerSize]byte
	if err := s.c.readFull(b[:]); err != nil {
		return Header{}, fmt.Errorf("%w: read header: %w", ErrBadFingerprint, err)
	}
	return decodeStreamHeader(b[:])
}

func (s *streamScanner) next() (Section, error) {
	start := s.c.off
	if _, err := s.c.r.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return Section{}, io.EOF
		}
		return Section{}, fmt.Errorf("osrm: read section header at %d: %w", start, err)
	}

	var b [sectionHeaderSize]byte
	if err := s.c.readFull(b[:]); err != nil {
		return Section{}, fmt.Errorf("osrm: read section header at %d: %w", start, err)
	}
	sec := Section{
		Tag:    string(b[:tagSize]),
		Offset: s.c.off,
		Length: int64(binary.LittleEndian.Uint64(b[tagSize:sectionHeaderSize])),
	}
	if err := checkBounds(sec, s.c.size); err != nil {
		return Section{}, err
	}
	return sec, nil
}

func (s *streamScanner) payload() io.Reader {
	return s.c
}

func (s *streamScanner) skipTo(off int64) error {
	if off < s.c.off {
		return fmt.Errorf("%w: at %d, asked for %d", ErrCursor, s.c.off, off)
	}
	if err := s.c.discard(off - s.c.off); err != nil {
		return fmt.Errorf("osrm: skip to %d: %w", off, err)
	}
	return nil
}

func (s *streamScanner) offset() int64 {
	return s.c.off
}

func (s *streamScanner) declaredCount(string) (uint64, bool) {
	return 0, false
}

// readRecord fills p from the current section.
func readRecord(c container, p []byte) error {
	_, err := io.ReadFull(c.payload(), p)
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// streamSize reports the bytes remaining in rd, or -1 if that cannot be
// learned without consuming it.
func streamSize(rd io.Reader) int64 {
	switch v := rd.(type) {
	case io.Seeker:
		cur, err := v.Seek(0, io.SeekCurrent)
		if err != nil {
			return -1
		}
		end, err := v.Seek(0, io.SeekEnd)
		if err != nil {
			return -1
		}
		if _, err := v.Seek(cur, io.SeekStart); err != nil {
			return -1
		}
		return end - cur
	case interface{ Len() int }:
		return int64(v.Len())
	case interface{ Size() int64 }:
		return v.Size()
	default:
		return -1
	}
}
