package osrm

import (
	"bytes"
	"os"

	"golang.org/x/sys/unix"
)

// File is a Reader over a file on disk.
type File struct {
	*Reader
	f       *os.File
	data    []byte
	mmapped bool
}

// Open maps a regular file read-only and returns a Reader over it. Pipes,
// devices and files that fail to map are streamed instead. The returned file
// must be closed.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	// Pipes, devices and procfs files report a size of zero whatever they
	// hold, so they are streamed unsized.
	size := stat.Size()
	if !stat.Mode().IsRegular() || size == 0 {
		opts = append([]Option{WithSize(-1)}, opts...)
		return &File{Reader: NewReader(f, opts...), f: f}, nil
	}

	if size <= int64(int(^uint(0)>>1)) {
		data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			_ = f.Close()
			opts = append([]Option{WithSize(size)}, opts...)
			return &File{
				Reader:  NewReader(bytes.NewReader(data), opts...),
				data:    data,
				mmapped: true,
			}, nil
		}
	}

	// Fallback path that does not require mmap support.
	opts = append([]Option{WithSize(size)}, opts...)
	return &File{Reader: NewReader(f, opts...), f: f}, nil
}

// Close releases the mapping or the file handle.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	var err error
	if f.mmapped && f.data != nil {
		err = unix.Munmap(f.data)
	}
	if f.f != nil {
		if cerr := f.f.Close(); err == nil {
			err = cerr
		}
	}
	f.data = nil
	f.f = nil
	f.mmapped = false
	return err
}
