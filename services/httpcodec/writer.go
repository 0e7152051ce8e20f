package httpcodec

import (
	"fmt"
	"io"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
)

type phase int

const (
	phaseStart phase = iota
	phaseHeaders
	phaseBody
	phaseClosed
)

var reasons = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	408: "Request Timeout",
	500: "Internal Server Error",
}

func reasonFor(code int) string {
	if r, ok := reasons[code]; ok {
		return r
	}
	return "Unknown"
}

// ResponseWriter is the stateful response sink described in spec §4.4:
// phases START -> HEADERS -> BODY, with a terminal CLOSED phase. Status
// may be written exactly once; headers only in START or HEADERS; the
// first body write implicitly emits status 200 if none was set yet,
// then the blank line terminating the headers.
//
// A "Connection: close" header is always emitted immediately after the
// status line — this codec never reuses a connection.
type ResponseWriter struct {
	w            io.Writer
	phase        phase
	status       int
	headers      map[string]string
	bytesWritten int64
}

// NewResponseWriter wraps w (the connection's buffered writer) in START
// phase.
func NewResponseWriter(w io.Writer) *ResponseWriter {
	return &ResponseWriter{w: w, headers: make(map[string]string)}
}

// Status returns the status code written so far, or 0 if none yet.
func (rw *ResponseWriter) Status() int { return rw.status }

// BytesWritten returns the cumulative number of body bytes written.
func (rw *ResponseWriter) BytesWritten() int64 { return rw.bytesWritten }

// HeaderWritten reports whether a status has already been written — callers
// (the per-connection worker) use this to decide whether a failure can
// still be turned into a response or only logged.
func (rw *ResponseWriter) HeaderWritten() bool { return rw.phase != phaseStart }

// WriteStatus emits the status line and the mandatory Connection:
// close header, moving START -> HEADERS. Any other phase is a protocol
// misuse (InternalError).
func (rw *ResponseWriter) WriteStatus(code int) error {
	if rw.phase != phaseStart {
		return apierr.Internal("WriteStatus called outside START phase")
	}
	if _, err := fmt.Fprintf(rw.w, "HTTP/1.1 %d %s\r\n", code, reasonFor(code)); err != nil {
		return mapWriteErr(err)
	}
	rw.status = code
	rw.phase = phaseHeaders
	return rw.writeHeaderLine("Connection", "close")
}

// WriteHeader emits "key: value\r\n" and records it in the header map.
// Only legal in START (status 200 is assumed first) or HEADERS.
func (rw *ResponseWriter) WriteHeader(key, value string) error {
	switch rw.phase {
	case phaseStart:
		if err := rw.WriteStatus(200); err != nil {
			return err
		}
	case phaseHeaders:
		// already past the status line
	default:
		return apierr.Internal("WriteHeader called outside START/HEADERS phase")
	}
	return rw.writeHeaderLine(key, value)
}

func (rw *ResponseWriter) writeHeaderLine(key, value string) error {
	if _, err := fmt.Fprintf(rw.w, "%s: %s\r\n", key, value); err != nil {
		return mapWriteErr(err)
	}
	rw.headers[key] = value
	return nil
}

// Write implements io.Writer as the spec's WriteData: the first call
// implicitly finishes status/headers (defaulting to 200) and emits the
// blank line before any body bytes; subsequent calls just append.
func (rw *ResponseWriter) Write(p []byte) (int, error) {
	switch rw.phase {
	case phaseStart:
		if err := rw.WriteStatus(200); err != nil {
			return 0, err
		}
		fallthrough
	case phaseHeaders:
		if _, err := io.WriteString(rw.w, "\r\n"); err != nil {
			return 0, mapWriteErr(err)
		}
		rw.phase = phaseBody
	case phaseBody:
		// already streaming body bytes
	default:
		return 0, apierr.Internal("Write called outside a writable phase")
	}
	n, err := rw.w.Write(p)
	rw.bytesWritten += int64(n)
	if err != nil {
		return n, mapWriteErr(err)
	}
	return n, nil
}

// Close flushes the underlying writer if it exposes Flush, and moves
// to CLOSED. Safe to call more than once.
func (rw *ResponseWriter) Close() error {
	if rw.phase == phaseClosed {
		return nil
	}
	rw.phase = phaseClosed
	if f, ok := rw.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return mapWriteErr(err)
		}
	}
	return nil
}

func mapWriteErr(err error) error {
	if isTimeout(err) {
		return apierr.Timeout("write timed out: %v", err)
	}
	return apierr.Internal("write failed: %v", err)
}
