package rcio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleReleasesOnlyOnce(t *testing.T) {
	calls := 0
	h := New("test", nil, func() error { calls++; return nil })
	h.Close()
	h.Close()
	h.Close()
	assert.Equal(t, 1, calls)
}

func TestHandleSwallowsReleaseError(t *testing.T) {
	h := New("test", nil, func() error { return errors.New("boom") })
	assert.NotPanics(t, h.Close)
}

func TestHandleNilReleaseIsNoop(t *testing.T) {
	h := New("test", nil, nil)
	assert.NotPanics(t, h.Close)
}

type fakeConn struct {
	*bytes.Buffer
	closed bool
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestStreamFlushesAndClosesOnRelease(t *testing.T) {
	buf := &fakeConn{Buffer: &bytes.Buffer{}}
	s := NewStream("conn", buf, nil)

	n, err := s.Writer.WriteString("hello")
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 0, buf.Len(), "nothing flushed yet")

	s.Close()
	assert.Equal(t, "hello", buf.String())
	assert.True(t, buf.closed)
}

func TestMMapUnmapsWithLength(t *testing.T) {
	var gotLength int
	data := make([]byte, 42)
	m := NewMMap("region", data, func(length int) error {
		gotLength = length
		return nil
	}, nil)
	assert.Equal(t, 42, len(m.Bytes()))
	m.Close()
	assert.Equal(t, 42, gotLength)
}

var _ io.ReadWriter = (*fakeConn)(nil)
