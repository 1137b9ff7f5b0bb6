package usecase

import (
	"io"
	"time"

	emaildomain "mailqa-backend/internal/email/domain"
)

// WorkspaceUsecase defines the interface for the load / index / ask flow
type WorkspaceUsecase interface {
	// LoadSampleEmails loads the built-in batch (or the configured sample file)
	LoadSampleEmails() ([]emaildomain.Email, error)
	// UploadEmails validates a JSON batch and stores it; on error the workspace is unchanged
	UploadEmails(raw []byte) ([]emaildomain.Email, error)
	// ImportMbox converts an mbox stream into a batch and stores it under the same rules as UploadEmails
	ImportMbox(r io.Reader) ([]emaildomain.Email, error)
	// IndexEmails runs the simulated indexing pass over the loaded batch
	IndexEmails(onProgress func([]emaildomain.IndexResult)) ([]emaildomain.IndexResult, error)
	// IndexResults returns the results published so far and whether a pass is running
	IndexResults() ([]emaildomain.IndexResult, bool)
	// AskQuestion answers a non-empty question
	AskQuestion(question string) (*emaildomain.Answer, error)
	// SearchEmails does a typo-tolerant search over the loaded batch
	SearchEmails(query string, limit int) []emaildomain.Email
	SuggestedQuestions() []string
	Snapshot() emaildomain.WorkspaceSnapshot
	Summary() emaildomain.WorkspaceSummary
	Reset() error
}

// Delays holds the simulated latency per operation
type Delays struct {
	Load   time.Duration
	Upload time.Duration
	Answer time.Duration
}
