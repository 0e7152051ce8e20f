package inference

import (
	"time"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
	"github.com/AleutianAI/aleutian-infer-core/pkg/jsonv"
)

func wallClock() int64 { return time.Now().Unix() }

// extractCompletionRequest manually walks the parsed jsonv.Value into
// a CompletionRequest; this codec never uses reflection-based
// unmarshaling, per the hand-rolled JSON layer's contract.
func extractCompletionRequest(v jsonv.Value) (*CompletionRequest, error) {
	modelVal, ok := v.Get("model")
	if !ok {
		return nil, apierr.BadRequest(`missing "model" field`)
	}
	model, err := modelVal.String()
	if err != nil {
		return nil, apierr.BadRequest(`"model" must be a string: %v`, err)
	}

	messagesVal, ok := v.Get("messages")
	if !ok {
		return nil, apierr.BadRequest(`missing "messages" field`)
	}
	items, err := messagesVal.Array()
	if err != nil {
		return nil, apierr.BadRequest(`"messages" must be an array: %v`, err)
	}

	messages := make([]ChatMessage, 0, len(items))
	for i, item := range items {
		roleVal, ok := item.Get("role")
		if !ok {
			return nil, apierr.BadRequest("messages[%d] missing %q field", i, "role")
		}
		role, err := roleVal.String()
		if err != nil {
			return nil, apierr.BadRequest("messages[%d].role must be a string: %v", i, err)
		}
		contentVal, ok := item.Get("content")
		if !ok {
			return nil, apierr.BadRequest("messages[%d] missing %q field", i, "content")
		}
		content, err := contentVal.String()
		if err != nil {
			return nil, apierr.BadRequest("messages[%d].content must be a string: %v", i, err)
		}
		messages = append(messages, ChatMessage{Role: role, Content: content})
	}

	return &CompletionRequest{Model: model, Messages: messages}, nil
}

// encodeResponse rebuilds the response as a jsonv.Value for printing
// through the hand-rolled printer instead of encoding/json.
func encodeResponse(resp *CompletionResponse) jsonv.Value {
	choices := make([]jsonv.Value, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		logprobs := jsonv.Null()
		choices = append(choices, jsonv.NewObject().
			Set("index", jsonv.Number(float64(c.Index))).
			Set("message", jsonv.NewObject().
				Set("role", jsonv.String(c.Message.Role)).
				Set("content", jsonv.String(c.Message.Content))).
			Set("logprobs", logprobs).
			Set("finish_reason", jsonv.String(c.FinishReason)))
	}

	usage := jsonv.NewObject().
		Set("prompt_tokens", jsonv.Number(float64(resp.Usage.PromptTokens))).
		Set("completion_tokens", jsonv.Number(float64(resp.Usage.CompletionTokens))).
		Set("total_tokens", jsonv.Number(float64(resp.Usage.TotalTokens)))

	return jsonv.NewObject().
		Set("id", jsonv.String(resp.ID)).
		Set("object", jsonv.String(resp.Object)).
		Set("created", jsonv.Number(float64(resp.Created))).
		Set("model", jsonv.String(resp.Model)).
		Set("system_fingerprint", jsonv.String(resp.SystemFingerprint)).
		Set("choices", jsonv.Array(choices...)).
		Set("usage", usage)
}
