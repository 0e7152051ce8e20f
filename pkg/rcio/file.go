package rcio

import (
	"log/slog"
	"os"
)

// File owns an *os.File and closes it on release. A File built from a
// nil *os.File is treated as already closed: Close is a no-op, mirroring the "closes on drop if
// non-negative" rule for raw file descriptors.
type File struct {
	handle *Handle
	f      *os.File
}

// NewFile wraps an already-open file as a scoped handle.
func NewFile(f *os.File, log *slog.Logger) *File {
	ff := &File{f: f}
	if f == nil {
		return ff
	}
	ff.handle = New("file:"+f.Name(), log, f.Close)
	return ff
}

// File returns the underlying *os.File for read/write use.
func (f *File) File() *os.File { return f.f }

// Close releases the file, logging (not raising) any close error.
func (f *File) Close() {
	if f.handle != nil {
		f.handle.Close()
	}
}
