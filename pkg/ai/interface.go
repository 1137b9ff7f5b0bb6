package ai

import (
	"context"

	emaildomain "mailqa-backend/internal/email/domain"
)

// Reply is a generated answer together with the topic it was drawn from
type Reply struct {
	Text  string
	Topic emaildomain.Topic
}

// Responder is the interface for question answering over an email corpus.
// Implement this interface to put a retrieval/inference engine behind the same contract.
type Responder interface {
	Respond(ctx context.Context, question string, corpus []emaildomain.Email) (Reply, error)
}

// ProviderType represents the responder implementation
type ProviderType string

const (
	ProviderKeyword ProviderType = "keyword"
)
