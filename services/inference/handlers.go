package inference

import (
	"context"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
	"github.com/AleutianAI/aleutian-infer-core/pkg/generator"
	"github.com/AleutianAI/aleutian-infer-core/pkg/jsonv"
	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
)

// Clock stamps a CompletionResponse's "created" field. Production code
// uses wallClock; tests inject a fixed value.
type Clock func() int64

// Handlers bundles the generator and model name the completion route
// needs; Healthz needs neither.
type Handlers struct {
	Gen       generator.Generator
	ModelName string
	Now       Clock
}

// Healthz writes 200 with an empty body for any method, per spec §4.7.
func (h *Handlers) Healthz(req *httpcodec.Request, rw *httpcodec.ResponseWriter) error {
	if err := rw.WriteStatus(200); err != nil {
		return err
	}
	_, err := rw.Write(nil)
	return err
}

// ChatCompletions implements the POST /v1/chat/completions route: it
// requires Content-Length, reads exactly that many body bytes, parses
// them as JSON, extracts and validates the request, invokes the
// generator with the first system and first user message, and emits
// an OpenAI-shaped completion response.
func (h *Handlers) ChatCompletions(req *httpcodec.Request, rw *httpcodec.ResponseWriter) error {
	length, ok := req.Header("Content-Length")
	if !ok {
		return apierr.BadRequest("missing Content-Length header")
	}
	n, err := strconv.Atoi(length)
	if err != nil || n < 0 {
		return apierr.BadRequest("invalid Content-Length %q", length)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(req.Body, body); err != nil {
		return apierr.BadRequest("reading request body: %v", err)
	}

	value, err := jsonv.Parse(body)
	if err != nil {
		return apierr.BadRequest("malformed JSON body: %v", err)
	}

	creq, err := extractCompletionRequest(value)
	if err != nil {
		return err
	}
	if err := validate.Struct(creq); err != nil {
		return apierr.BadRequest("invalid completion request: %v", err)
	}

	system, ok := firstByRole(creq.Messages, "system")
	if !ok {
		return apierr.BadRequest("messages must include a system role entry")
	}
	user, ok := firstByRole(creq.Messages, "user")
	if !ok {
		return apierr.BadRequest("messages must include a user role entry")
	}

	content, err := h.Gen.Generate(context.Background(),
		generator.Message{Role: system.Role, Content: system.Content},
		generator.Message{Role: user.Role, Content: user.Content})
	if err != nil {
		return apierr.Wrap(500, err)
	}

	resp := buildResponse(creq, h.ModelName, content, h.now())
	if err := rw.WriteStatus(200); err != nil {
		return err
	}
	if err := rw.WriteHeader("Content-Type", "application/json"); err != nil {
		return err
	}
	_, err = rw.Write([]byte(jsonv.Print(encodeResponse(resp))))
	return err
}

func (h *Handlers) now() int64 {
	if h.Now != nil {
		return h.Now()
	}
	return wallClock()
}

func firstByRole(msgs []ChatMessage, role string) (ChatMessage, bool) {
	for _, m := range msgs {
		if m.Role == role {
			return m, true
		}
	}
	return ChatMessage{}, false
}

func buildResponse(req *CompletionRequest, modelName, content string, created int64) *CompletionResponse {
	prompt := 0
	for _, m := range req.Messages {
		prompt += len(m.Content)
	}
	completion := len(content)
	return &CompletionResponse{
		ID:                "chatcmpl-" + uuid.NewString(),
		Object:            "chat.completion",
		Created:           created,
		Model:             modelName,
		SystemFingerprint: "fp_" + modelName,
		Choices: []Choice{{
			Index:        0,
			Message:      ChatMessage{Role: "assistant", Content: content},
			Logprobs:     nil,
			FinishReason: "stop",
		}},
		Usage: Usage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      prompt + completion,
		},
	}
}
