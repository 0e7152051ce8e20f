package httpcodec

import (
	"bufio"
	"errors"
	"net"
	"strings"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
)

const maxLineBytes = 256

// ParseRequest reads a request line and headers off r and returns a
// Request whose Body is r itself, positioned at the first byte after
// the blank line terminating the headers.
//
// Lines are read one at a time, capped at maxLineBytes including the
// terminator; a line lacking the full CRLF terminator is a
// apierr.BadRequest. A read that times out (EAGAIN/EWOULDBLOCK at the
// socket) becomes an apierr.Timeout.
func ParseRequest(r *bufio.Reader, remoteAddr string) (*Request, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	for line == "" {
		line, err = readLine(r)
		if err != nil {
			return nil, err
		}
	}

	method, path, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for {
		line, err = readLine(r)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		key, value, err := parseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		headers[key] = value
	}

	return &Request{
		RemoteAddr: remoteAddr,
		Method:     method,
		Path:       path,
		Headers:    headers,
		Body:       r,
	}, nil
}

func parseRequestLine(line string) (Method, string, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return 0, "", apierr.BadRequest("malformed request line %q", line)
	}
	var method Method
	switch parts[0] {
	case "GET":
		method = MethodGET
	case "POST":
		method = MethodPOST
	default:
		return 0, "", apierr.BadRequest("unsupported method %q", parts[0])
	}
	return method, parts[1], nil
}

// parseHeaderLine splits "KEY: VALUE" at the first colon-space pair —
// one space after the colon — keeping the key exactly as written
// (case-preserving).
func parseHeaderLine(line string) (key, value string, err error) {
	colon := strings.Index(line, ": ")
	if colon < 0 {
		return "", "", apierr.BadRequest("malformed header %q", line)
	}
	return line[:colon], line[colon+2:], nil
}

// readLine reads up to maxLineBytes bytes (including the CRLF
// terminator) from r. A line that never terminates with CRLF within
// that budget is a BadRequest; a socket timeout becomes a Timeout.
func readLine(r *bufio.Reader) (string, error) {
	buf := make([]byte, 0, 64)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if isTimeout(err) {
				return "", apierr.Timeout("timed out reading request line: %v", err)
			}
			return "", apierr.BadRequest("reading request line: %v", err)
		}
		buf = append(buf, b)
		if len(buf) > maxLineBytes {
			return "", apierr.BadRequest("line exceeds %d bytes", maxLineBytes)
		}
		if b == '\n' {
			if len(buf) < 2 || buf[len(buf)-2] != '\r' {
				return "", apierr.BadRequest("line missing CRLF terminator")
			}
			return string(buf[:len(buf)-2]), nil
		}
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
