package rcio

import (
	"bufio"
	"io"
	"log/slog"
)

// streamCloser is the minimal contract a buffered stream's underlying
// transport must satisfy: something bufio can wrap and that can be
// closed independently of the buffer.
type streamCloser interface {
	io.Reader
	io.Writer
	Close() error
}

// Stream owns a buffered reader/writer pair over a transport (typically
// an accepted socket) and, on release, flushes pending writes before
// closing the transport.
type Stream struct {
	handle *Handle
	Reader *bufio.Reader
	Writer *bufio.Writer
}

// NewStream wraps conn in buffered I/O. Release flushes the writer, then
// closes conn; a flush failure is logged but does not stop the close.
func NewStream(name string, conn streamCloser, log *slog.Logger) *Stream {
	if log == nil {
		log = slog.Default()
	}
	s := &Stream{
		Reader: bufio.NewReader(conn),
		Writer: bufio.NewWriter(conn),
	}
	s.handle = New(name, log, func() error {
		flushErr := s.Writer.Flush()
		closeErr := conn.Close()
		if flushErr != nil {
			return flushErr
		}
		return closeErr
	})
	return s
}

// Close flushes and closes the underlying transport, logging (not
// raising) any failure.
func (s *Stream) Close() { s.handle.Close() }
