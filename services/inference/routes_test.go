package inference

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/aleutian-infer-core/pkg/generator"
	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
	"github.com/AleutianAI/aleutian-infer-core/services/router"
)

func TestRegisterRejectsGetOnCompletionsRoute(t *testing.T) {
	rt := router.New()
	Register(rt, generator.NewEcho("m"), "m")

	req := &httpcodec.Request{Method: httpcodec.MethodGET, Path: "/v1/chat/completions", Headers: map[string]string{}}
	var buf bytes.Buffer
	rw := httpcodec.NewResponseWriter(&buf)
	require.NoError(t, rt.Dispatch(req, rw))
	assert.Contains(t, buf.String(), "404")
}

func TestRegisterHealthzAcceptsAnyMethod(t *testing.T) {
	rt := router.New()
	Register(rt, generator.NewEcho("m"), "m")

	for _, method := range []httpcodec.Method{httpcodec.MethodGET, httpcodec.MethodPOST} {
		req := &httpcodec.Request{Method: method, Path: "/healthz", Headers: map[string]string{}}
		var buf bytes.Buffer
		rw := httpcodec.NewResponseWriter(&buf)
		require.NoError(t, rt.Dispatch(req, rw))
		assert.Contains(t, buf.String(), "200")
	}
}
