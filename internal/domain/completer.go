package domain

import "context"

// ChatMessage is one turn of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// ChatCompleter produces generated text from a remote chat-completion
// service. The credential is supplied per call by the user and must never
// be stored or logged by implementations.
type ChatCompleter interface {
	Complete(ctx context.Context, apiKey string, messages []ChatMessage) (string, error)
}
