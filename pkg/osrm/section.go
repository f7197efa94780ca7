package osrm

import "fmt"

// Section describes one section of the stream. Offset is the absolute
// position of the first payload byte.
type Section struct {
	Tag    string
	Offset int64
	Length int64
}

// End returns the offset just past the payload.
func (s Section) End() int64 {
	return s.Offset + s.Length
}

func (s Section) String() string {
	return fmt.Sprintf("%q [%d, %d)", s.Tag, s.Offset, s.End())
}

// checkBounds rejects sections whose end overflows or, when the stream size
// is known, runs past the end of the stream.
func checkBounds(s Section, size int64) error {
	if s.Length < 0 || s.End() < s.Offset {
		return fmt.Errorf("%w: section %s length overflows", ErrTruncatedSection, s.Tag)
	}
	if size >= 0 && s.End() > size {
		return fmt.Errorf("%w: section %s ends at %d, stream is %d bytes", ErrTruncatedSection, s.Tag, s.End(), size)
	}
	return nil
}
