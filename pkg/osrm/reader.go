package osrm

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samcharles93/osrmreader/internal/logger"
)

type options struct {
	container Container
	version   uint32
	size      int64
	sizeSet   bool
	unknown   bool
	log       logger.Logger
}

// Option configures a Reader.
type Option func(*options)

// WithContainer forces the container encoding instead of sniffing it.
func WithContainer(c Container) Option {
	return func(o *options) { o.container = c }
}

// WithVersion pins the format version. A file declaring any other version is
// rejected with ErrUnsupportedVersion. Zero accepts every supported version.
func WithVersion(v uint32) Option {
	return func(o *options) { o.version = v }
}

// WithSize declares the total stream length so truncated sections are caught
// when they are opened. Sources that can report their own size do not need it.
// A negative n marks the size as unknown without probing the source.
func WithSize(n int64) Option {
	return func(o *options) {
		o.size = n
		o.sizeSet = true
	}
}

// WithUnknownSections makes Entries yield *Unknown for sections without a
// known schema instead of passing over them.
func WithUnknownSections(yes bool) Option {
	return func(o *options) { o.unknown = yes }
}

// WithLogger sets the logger used for debug tracing of the scan.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = logger.New(l.Handler())
		}
	}
}

// Reader reads the entries of one routing-graph stream. It owns the source
// for its lifetime and yields its entries once.
type Reader struct {
	src  io.Reader
	opts options
	used bool
}

// NewReader creates a Reader over any sequential byte source.
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := options{size: -1, log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Reader{src: r, opts: o}
}

// Entries validates the header and returns the entry iterator. It fails
// before any section is read when the fingerprint or version is wrong.
func (r *Reader) Entries() (*Entries, error) {
	if r.used {
		return nil, ErrReaderConsumed
	}
	r.used = true

	size := r.opts.size
	if !r.opts.sizeSet {
		size = streamSize(r.src)
	}
	cur := newCursor(r.src, size)

	kind := r.opts.container
	if kind == ContainerAuto {
		var err error
		if kind, err = cur.sniff(); err != nil {
			return nil, err
		}
	}

	var c container
	switch kind {
	case ContainerSections:
		c = newStreamScanner(cur)
	case ContainerTar:
		c = newTarScanner(cur)
	default:
		return nil, fmt.Errorf("osrm: invalid container %d", kind)
	}

	hdr, err := c.readHeader()
	if err != nil {
		return nil, err
	}
	if r.opts.version != 0 && hdr.Version != r.opts.version {
		return nil, fmt.Errorf("%w: file is %s, want version %d", ErrUnsupportedVersion, hdr, r.opts.version)
	}
	if !supported(hdr) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, hdr)
	}

	log := r.opts.log.With("container", kind.String())
	log.Debug("header", "version", hdr.Version, "size", size)

	return &Entries{
		c:       c,
		hdr:     hdr,
		log:     log,
		unknown: r.opts.unknown,
	}, nil
}
