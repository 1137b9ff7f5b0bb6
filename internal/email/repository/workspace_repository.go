package repository

import (
	"sync"

	emaildomain "mailqa-backend/internal/email/domain"
)

// WorkspaceRepository holds the transient state of one interaction.
// Nothing is written to disk; a restart starts from StepInitial.
type WorkspaceRepository interface {
	// ReplaceEmails stores a new batch, clears index results and moves to StepEmailsLoaded.
	// It returns false without changes while a pass is running.
	ReplaceEmails(source string, emails []emaildomain.Email) bool
	// Emails returns a copy of the loaded batch
	Emails() []emaildomain.Email
	// BeginIndexing marks a pass as running and returns the batch it covers.
	// ok is false if a pass is already running. An empty batch is returned
	// without starting a pass.
	BeginIndexing() (emails []emaildomain.Email, ok bool)
	// PublishIndexResults replaces the visible results with a longer prefix
	PublishIndexResults(results []emaildomain.IndexResult)
	// FinishIndexing clears the running flag and moves to StepIndexed if the pass completed
	FinishIndexing(completed bool)
	// IndexResults returns a copy of the published results and whether a pass is running
	IndexResults() ([]emaildomain.IndexResult, bool)
	// RecordAnswer stores the last answer and bumps the per-topic counter
	RecordAnswer(answer emaildomain.Answer)
	// Snapshot returns a copy of the full state
	Snapshot() emaildomain.WorkspaceSnapshot
	// Counters returns questions processed per topic
	Counters() map[emaildomain.Topic]int
	// Reset drops everything; false while a pass is running
	Reset() bool
}

type workspaceRepository struct {
	mu           sync.RWMutex
	step         emaildomain.Step
	source       string
	emails       []emaildomain.Email
	indexResults []emaildomain.IndexResult
	indexing     bool
	lastAnswer   *emaildomain.Answer
	answers      map[emaildomain.Topic]int
}

// NewWorkspaceRepository creates an empty in-memory workspace
func NewWorkspaceRepository() WorkspaceRepository {
	return &workspaceRepository{
		step:    emaildomain.StepInitial,
		answers: make(map[emaildomain.Topic]int),
	}
}

func (r *workspaceRepository) ReplaceEmails(source string, emails []emaildomain.Email) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexing {
		return false
	}
	r.source = source
	r.emails = append([]emaildomain.Email(nil), emails...)
	r.indexResults = nil
	r.step = emaildomain.StepEmailsLoaded
	return true
}

func (r *workspaceRepository) Emails() []emaildomain.Email {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]emaildomain.Email(nil), r.emails...)
}

func (r *workspaceRepository) BeginIndexing() ([]emaildomain.Email, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexing {
		return nil, false
	}
	if len(r.emails) == 0 {
		return nil, true
	}
	r.indexing = true
	r.indexResults = nil
	return append([]emaildomain.Email(nil), r.emails...), true
}

func (r *workspaceRepository) PublishIndexResults(results []emaildomain.IndexResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Published sequences only grow within a pass
	if len(results) < len(r.indexResults) {
		return
	}
	r.indexResults = append([]emaildomain.IndexResult(nil), results...)
}

func (r *workspaceRepository) FinishIndexing(completed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.indexing = false
	if completed {
		r.step = emaildomain.StepIndexed
	}
}

func (r *workspaceRepository) IndexResults() ([]emaildomain.IndexResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]emaildomain.IndexResult{}, r.indexResults...), r.indexing
}

func (r *workspaceRepository) RecordAnswer(answer emaildomain.Answer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastAnswer = &answer
	r.answers[answer.Topic]++
}

func (r *workspaceRepository) Snapshot() emaildomain.WorkspaceSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := emaildomain.WorkspaceSnapshot{
		Step:         r.step,
		Source:       r.source,
		Emails:       append([]emaildomain.Email{}, r.emails...),
		IndexResults: append([]emaildomain.IndexResult{}, r.indexResults...),
		Indexing:     r.indexing,
	}
	if r.lastAnswer != nil {
		answer := *r.lastAnswer
		snapshot.LastAnswer = &answer
	}
	return snapshot
}

func (r *workspaceRepository) Counters() map[emaildomain.Topic]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counters := make(map[emaildomain.Topic]int, len(r.answers))
	for topic, n := range r.answers {
		counters[topic] = n
	}
	return counters
}

func (r *workspaceRepository) Reset() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexing {
		return false
	}
	r.step = emaildomain.StepInitial
	r.source = ""
	r.emails = nil
	r.indexResults = nil
	r.lastAnswer = nil
	r.answers = make(map[emaildomain.Topic]int)
	return true
}
