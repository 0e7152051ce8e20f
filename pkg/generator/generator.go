// Package generator defines the interface the chat-completions handler
// invokes to produce a reply, and a placeholder implementation: this
// exercise's scope stops at the HTTP/JSON/concurrency core, not an
// actual inference backend (see spec Non-goals).
package generator

import "context"

// Message is one chat-completion turn.
type Message struct {
	Role    string
	Content string
}

// Generator produces a single assistant reply given the system and
// user messages extracted from a completion request. Implementations
// must be safe for concurrent use: the same Generator is invoked from
// every worker goroutine.
type Generator interface {
	Generate(ctx context.Context, system, user Message) (string, error)
}

// Echo is a placeholder Generator that mirrors the user's content back
// unchanged, standing in for a real LM until one is wired in. ModelName
// labels the generator; it is not added to the reply.
type Echo struct {
	ModelName string
}

// NewEcho returns an Echo generator labeled with modelName.
func NewEcho(modelName string) *Echo {
	return &Echo{ModelName: modelName}
}

// Generate ignores the system message and echoes the user's content.
func (e *Echo) Generate(ctx context.Context, system, user Message) (string, error) {
	return user.Content, nil
}
