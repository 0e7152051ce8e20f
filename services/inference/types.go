// Package inference wires the hand-rolled HTTP/JSON core to the two
// routes described in spec §4.7: a liveness probe and an
// OpenAI-compatible chat-completions endpoint.
package inference

import "github.com/go-playground/validator/v10"

// ChatMessage is one entry of a completion request's "messages" array,
// or of a response's single emitted choice.
type ChatMessage struct {
	Role    string `validate:"required,oneof=system user assistant"`
	Content string `validate:"required,max=32768"`
}

// CompletionRequest is the minimum accepted request shape from spec §6.
type CompletionRequest struct {
	Model    string        `validate:"required"`
	Messages []ChatMessage `validate:"required,min=1,max=100,dive"`
}

// Choice is one entry of a CompletionResponse's "choices" array. This
// server always emits exactly one.
type Choice struct {
	Index        int
	Message      ChatMessage
	Logprobs     *string
	FinishReason string
}

// Usage reports token accounting. This server has no real tokenizer,
// so counts are byte lengths of the message contents — a stand-in that keeps the shape
// OpenAI-compatible without claiming real tokenization.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionResponse mirrors the OpenAI chat-completions response
// shape described in spec §6.
type CompletionResponse struct {
	ID                string
	Object            string
	Created           int64
	Model             string
	SystemFingerprint string
	Choices           []Choice
	Usage             Usage
}

var validate = validator.New()
