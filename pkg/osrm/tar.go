package osrm

import (
	"archive/tar"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// tarScanner frames an osrm-extract tar archive. Every regular member is a
// section; "<name>.meta" members carrying a uint64 element count are read
// here and never surface as sections.
type tarScanner struct {
	c      *cursor
	tr     *tar.Reader
	counts map[string]uint64
}

func newTarScanner(c *cursor) *tarScanner {
	return &tarScanner{
		c:      c,
		tr:     tar.NewReader(c),
		counts: make(map[string]uint64),
	}
}

func (s *tarScanner) readHeader() (Header, error) {
	hdr, err := s.tr.Next()
	if err != nil {
		return Header{}, fmt.Errorf("%w: read fingerprint member: %w", ErrBadFingerprint, err)
	}
	if hdr.Name != tarFingerprintName {
		return Header{}, fmt.Errorf("%w: first member is %q, want %q", ErrBadFingerprint, hdr.Name, tarFingerprintName)
	}
	if hdr.Size != headerSize {
		return Header{}, fmt.Errorf("%w: fingerprint member is %d bytes", ErrBadFingerprint, hdr.Size)
	}
	var b [headerSize]byte
	if _, err := io.ReadFull(s.tr, b[:]); err != nil {
		return Header{}, fmt.Errorf("%w: read fingerprint: %w", ErrBadFingerprint, err)
	}
	return decodeTarFingerprint(b[:])
}

func (s *tarScanner) next() (Section, error) {
	for {
		hdr, err := s.tr.Next()
		if errors.Is(err, io.EOF) {
			return Section{}, io.EOF
		}
		if errors.Is(err, tar.ErrHeader) {
			return Section{}, fmt.Errorf("%w: at %d: %w", ErrFormat, s.c.off, err)
		}
		if err != nil {
			return Section{}, fmt.Errorf("osrm: read tar member at %d: %w", s.c.off, err)
		}
		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}

		sec := Section{Tag: hdr.Name, Offset: s.c.off, Length: hdr.Size}
		if err := checkBounds(sec, s.c.size); err != nil {
			return Section{}, err
		}

		if name, ok := strings.CutSuffix(hdr.Name, tarMetaSuffix); ok && hdr.Size == 8 {
			var b [8]byte
			if _, err := io.ReadFull(s.tr, b[:]); err != nil {
				return Section{}, fmt.Errorf("osrm: read %s: %w", hdr.Name, err)
			}
			s.counts[name] = binary.LittleEndian.Uint64(b[:])
			continue
		}
		return sec, nil
	}
}

func (s *tarScanner) payload() io.Reader {
	return s.tr
}

// skipTo discards through the tar reader so its view of the member stays in
// step with the cursor.
func (s *tarScanner) skipTo(off int64) error {
	if off < s.c.off {
		return fmt.Errorf("%w: at %d, asked for %d", ErrCursor, s.c.off, off)
	}
	n := off - s.c.off
	copied, err := io.CopyN(io.Discard, s.tr, n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("osrm: skip to %d after %d bytes: %w", off, copied, err)
	}
	return nil
}

func (s *tarScanner) offset() int64 {
	return s.c.off
}

func (s *tarScanner) declaredCount(tag string) (uint64, bool) {
	n, ok := s.counts[tag]
	return n, ok
}
