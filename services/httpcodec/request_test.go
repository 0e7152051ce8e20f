package httpcodec

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestLineAndHeaders(t *testing.T) {
	raw := "GET /foo HTTP/1.1\r\na: b\r\n1: 2\r\n\r\nbody-bytes"
	r := bufio.NewReader(strings.NewReader(raw))

	req, err := ParseRequest(r, "127.0.0.1:1234")
	require.NoError(t, err)
	assert.Equal(t, MethodGET, req.Method)
	assert.Equal(t, "/foo", req.Path)
	v, ok := req.Header("a")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	v, ok = req.Header("1")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "body-bytes", string(rest))
}

func TestParseRequestPostMethod(t *testing.T) {
	raw := "POST /v1/chat/completions HTTP/1.1\r\nContent-Length: 0\r\n\r\n"
	req, err := ParseRequest(bufio.NewReader(strings.NewReader(raw)), "")
	require.NoError(t, err)
	assert.Equal(t, MethodPOST, req.Method)
}

func TestParseRequestRejectsUnsupportedMethod(t *testing.T) {
	raw := "PUT /foo HTTP/1.1\r\n\r\n"
	_, err := ParseRequest(bufio.NewReader(strings.NewReader(raw)), "")
	require.Error(t, err)
	assert.Equal(t, 400, apierr.StatusOf(err))
}

func TestParseRequestRejectsMissingCRLF(t *testing.T) {
	raw := "GET /foo HTTP/1.1\n\n"
	_, err := ParseRequest(bufio.NewReader(strings.NewReader(raw)), "")
	require.Error(t, err)
	assert.Equal(t, 400, apierr.StatusOf(err))
}

func TestParseRequestRejectsOverlongLine(t *testing.T) {
	raw := "GET /" + strings.Repeat("a", 300) + " HTTP/1.1\r\n\r\n"
	_, err := ParseRequest(bufio.NewReader(strings.NewReader(raw)), "")
	require.Error(t, err)
	assert.Equal(t, 400, apierr.StatusOf(err))
}

func TestParseRequestRejectsMalformedHeader(t *testing.T) {
	raw := "GET /foo HTTP/1.1\r\nbad-header-no-colon-space\r\n\r\n"
	_, err := ParseRequest(bufio.NewReader(strings.NewReader(raw)), "")
	require.Error(t, err)
	assert.Equal(t, 400, apierr.StatusOf(err))
}

func TestParseRequestLaterHeaderOverwritesEarlier(t *testing.T) {
	raw := "GET /foo HTTP/1.1\r\nx: 1\r\nx: 2\r\n\r\n"
	req, err := ParseRequest(bufio.NewReader(strings.NewReader(raw)), "")
	require.NoError(t, err)
	v, _ := req.Header("x")
	assert.Equal(t, "2", v)
}

// timeoutReader returns a net.Error-like timeout on every read.
type timeoutReader struct{}

func (timeoutReader) Read(p []byte) (int, error) { return 0, timeoutErr{} }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestParseRequestMapsTimeoutTo408(t *testing.T) {
	_, err := ParseRequest(bufio.NewReader(timeoutReader{}), "")
	require.Error(t, err)
	assert.Equal(t, 408, apierr.StatusOf(err))
}

var _ io.Reader = (*bytes.Reader)(nil)
