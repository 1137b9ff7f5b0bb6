package ai

import (
	"context"
	"strings"

	emaildomain "mailqa-backend/internal/email/domain"
)

// KeywordResponder picks a canned answer by substring match on the question.
// It does not read the corpus.
type KeywordResponder struct {
	table AnswerTable
}

// NewKeywordResponder creates a responder over the given table
func NewKeywordResponder(table AnswerTable) *KeywordResponder {
	return &KeywordResponder{table: table}
}

// Answer returns the canned answer for the question. The corpus is context only.
func (k *KeywordResponder) Answer(question string, corpus []emaildomain.Email) string {
	group := k.match(question)
	if group == nil {
		return k.table.Fallback
	}
	return group.Answer
}

// Respond implements Responder. It never fails.
func (k *KeywordResponder) Respond(ctx context.Context, question string, corpus []emaildomain.Email) (Reply, error) {
	topic := emaildomain.TopicGeneral
	if group := k.match(question); group != nil {
		topic = group.Topic
	}
	return Reply{Text: k.Answer(question, corpus), Topic: topic}, nil
}

func (k *KeywordResponder) match(question string) *KeywordGroup {
	lower := strings.ToLower(question)
	for i := range k.table.Groups {
		for _, keyword := range k.table.Groups[i].Keywords {
			if strings.Contains(lower, keyword) {
				return &k.table.Groups[i]
			}
		}
	}
	return nil
}
