package osrm

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is the parent of every structural error. Format errors end
	// the entry stream.
	ErrFormat = errors.New("osrm: format error")

	ErrBadFingerprint     = fmt.Errorf("%w: bad fingerprint", ErrFormat)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrBadFingerprint)
	ErrSectionLength      = fmt.Errorf("%w: section length does not match record width", ErrFormat)
	ErrTruncatedSection   = fmt.Errorf("%w: truncated section", ErrFormat)

	// ErrDecode is the parent of every per-record error. Decode errors never
	// end the entry stream.
	ErrDecode          = errors.New("osrm: decode error")
	ErrReservedBits    = fmt.Errorf("%w: reserved bits set", ErrDecode)
	ErrCoordinateRange = fmt.Errorf("%w: coordinate out of range", ErrDecode)

	ErrStaleEntry     = errors.New("osrm: record sequence used after its entry was superseded")
	ErrReaderConsumed = errors.New("osrm: entries already requested from this reader")
	ErrCursor         = errors.New("osrm: cursor moved past section end")
)

// DecodeError reports a single record that could not be decoded.
type DecodeError struct {
	Tag    string
	Index  uint64
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("osrm: section %q record %d at offset %d: %v", e.Tag, e.Index, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
