package inference

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/aleutian-infer-core/pkg/generator"
	"github.com/AleutianAI/aleutian-infer-core/pkg/jsonv"
	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
)

func newHandlers() *Handlers {
	return &Handlers{
		Gen:       generator.NewEcho("test-model"),
		ModelName: "test-model",
		Now:       func() int64 { return 1700000000 },
	}
}

func requestWithBody(body string) *httpcodec.Request {
	return &httpcodec.Request{
		Method:  httpcodec.MethodPOST,
		Path:    "/v1/chat/completions",
		Headers: map[string]string{"Content-Length": fmt.Sprintf("%d", len(body))},
		Body:    strings.NewReader(body),
	}
}

// S7 — chat completion shape.
func TestChatCompletionsHappyPath(t *testing.T) {
	h := newHandlers()
	body := `{"model": "ignored", "messages": [{"role": "system", "content": "be terse"}, {"role": "user", "content": "hello there"}]}`

	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	require.NoError(t, h.ChatCompletions(requestWithBody(body), rw))

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")

	idx := strings.Index(out, "\r\n\r\n")
	require.Greater(t, idx, -1)
	jsonBody := out[idx+4:]

	v, err := jsonv.Parse([]byte(jsonBody))
	require.NoError(t, err)
	obj, _ := v.Get("object")
	s, _ := obj.String()
	assert.Equal(t, "chat.completion", s)

	choices, _ := v.Get("choices")
	items, _ := choices.Array()
	require.Len(t, items, 1)
	message, _ := items[0].Get("message")
	content, _ := message.Get("content")
	contentStr, _ := content.String()
	assert.Equal(t, "hello there", contentStr)
}

func TestChatCompletionsMissingContentLength(t *testing.T) {
	h := newHandlers()
	req := &httpcodec.Request{Method: httpcodec.MethodPOST, Path: "/v1/chat/completions", Headers: map[string]string{}}
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	err := h.ChatCompletions(req, rw)
	require.Error(t, err)
}

func TestChatCompletionsMalformedJSON(t *testing.T) {
	h := newHandlers()
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	err := h.ChatCompletions(requestWithBody("not json"), rw)
	require.Error(t, err)
}

func TestChatCompletionsMissingSystemRole(t *testing.T) {
	h := newHandlers()
	body := `{"model": "m", "messages": [{"role": "user", "content": "hi"}]}`
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	err := h.ChatCompletions(requestWithBody(body), rw)
	require.Error(t, err)
}

func TestChatCompletionsMissingUserRole(t *testing.T) {
	h := newHandlers()
	body := `{"model": "m", "messages": [{"role": "system", "content": "hi"}]}`
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	err := h.ChatCompletions(requestWithBody(body), rw)
	require.Error(t, err)
}

func TestChatCompletionsRejectsUnknownRole(t *testing.T) {
	h := newHandlers()
	body := `{"model": "m", "messages": [{"role": "system", "content": "hi"}, {"role": "wizard", "content": "hi"}]}`
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	err := h.ChatCompletions(requestWithBody(body), rw)
	require.Error(t, err)
}

func TestHealthzWrites200EmptyBody(t *testing.T) {
	h := newHandlers()
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	req := &httpcodec.Request{Method: httpcodec.MethodGET, Path: "/healthz"}
	require.NoError(t, h.Healthz(req, rw))
	assert.Contains(t, buf.String(), "HTTP/1.1 200 OK\r\n")
	assert.Equal(t, int64(0), rw.BytesWritten())
}
