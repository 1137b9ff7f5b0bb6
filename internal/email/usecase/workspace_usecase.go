package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	emaildomain "mailqa-backend/internal/email/domain"
	"mailqa-backend/internal/email/repository"
	"mailqa-backend/pkg/ai"
	"mailqa-backend/pkg/fuzzy"
	"mailqa-backend/pkg/mbox"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SampleSource supplies the batch loaded by LoadSampleEmails
type SampleSource func() ([]emaildomain.Email, error)

// BuiltinSample returns the hard-coded sample batch
func BuiltinSample() ([]emaildomain.Email, error) {
	return emaildomain.SampleEmails(), nil
}

// FileSample reads a JSON batch from path and validates it on every load
func FileSample(path string) SampleSource {
	return func() ([]emaildomain.Email, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sample file: %w", err)
		}
		return ValidateEmails(raw)
	}
}

// Options configures a WorkspaceUsecase
type Options struct {
	Delay              Delay
	Delays             Delays
	Sample             SampleSource
	SuggestedQuestions []string
	Now                func() time.Time
}

// workspaceUsecase implements WorkspaceUsecase interface
type workspaceUsecase struct {
	repo      repository.WorkspaceRepository
	responder ai.Responder
	indexer   *Indexer

	delay     Delay
	delays    Delays
	sample    SampleSource
	questions []string
	now       func() time.Time
}

// NewWorkspaceUsecase creates a new instance of workspaceUsecase
func NewWorkspaceUsecase(repo repository.WorkspaceRepository, responder ai.Responder, indexer *Indexer, opts Options) WorkspaceUsecase {
	u := &workspaceUsecase{
		repo:      repo,
		responder: responder,
		indexer:   indexer,
		delay:     opts.Delay,
		delays:    opts.Delays,
		sample:    opts.Sample,
		questions: opts.SuggestedQuestions,
		now:       opts.Now,
	}
	if u.delay == nil {
		u.delay = NoDelay
	}
	if u.sample == nil {
		u.sample = BuiltinSample
	}
	if u.questions == nil {
		u.questions = ai.DefaultSuggestedQuestions()
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

func (u *workspaceUsecase) LoadSampleEmails() ([]emaildomain.Email, error) {
	u.delay(u.delays.Load)

	emails, err := u.sample()
	if err != nil {
		return nil, err
	}
	return u.store("sample", emails)
}

func (u *workspaceUsecase) UploadEmails(raw []byte) ([]emaildomain.Email, error) {
	emails, err := ValidateEmails(raw)
	if err != nil {
		log.Printf("[Workspace] Upload rejected: %v", err)
		return nil, err
	}

	u.delay(u.delays.Upload)
	return u.store("upload", emails)
}

func (u *workspaceUsecase) ImportMbox(r io.Reader) ([]emaildomain.Email, error) {
	messages, err := mbox.ReadMessages(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	records := make([]emaildomain.Email, 0, len(messages))
	for _, m := range messages {
		receivedAt := ""
		if !m.ReceivedAt.IsZero() {
			receivedAt = m.ReceivedAt.UTC().Format(time.RFC3339)
		}
		records = append(records, emaildomain.Email{
			ID:         m.MessageID,
			Subject:    m.Subject,
			Sender:     m.Sender,
			ReceivedAt: receivedAt,
			Content:    m.Content,
		})
	}

	// Round-trip through the upload validator so both paths share the same rules
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mbox batch: %w", err)
	}
	emails, err := ValidateEmails(raw)
	if err != nil {
		log.Printf("[Workspace] Mbox import rejected: %v", err)
		return nil, err
	}

	u.delay(u.delays.Upload)
	return u.store("mbox", emails)
}

func (u *workspaceUsecase) store(source string, emails []emaildomain.Email) ([]emaildomain.Email, error) {
	if !u.repo.ReplaceEmails(source, emails) {
		return nil, ErrIndexingInProgress
	}
	log.Printf("[Workspace] Loaded %d emails from %s", len(emails), source)
	return emails, nil
}

func (u *workspaceUsecase) IndexEmails(onProgress func([]emaildomain.IndexResult)) ([]emaildomain.IndexResult, error) {
	// The batch is read under the same lock that starts the pass, so a
	// concurrent load cannot swap it out from under the indexer.
	emails, ok := u.repo.BeginIndexing()
	if !ok {
		return nil, ErrIndexingInProgress
	}
	if len(emails) == 0 {
		return nil, ErrNoEmails
	}

	completed := false
	defer func() { u.repo.FinishIndexing(completed) }()

	results := u.indexer.Index(emails, func(partial []emaildomain.IndexResult) {
		u.repo.PublishIndexResults(partial)
		if onProgress != nil {
			onProgress(partial)
		}
	})
	completed = true

	return results, nil
}

func (u *workspaceUsecase) IndexResults() ([]emaildomain.IndexResult, bool) {
	return u.repo.IndexResults()
}

func (u *workspaceUsecase) AskQuestion(question string) (*emaildomain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	u.delay(u.delays.Answer)

	reply, err := u.responder.Respond(context.Background(), question, u.corpus())
	if err != nil {
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	answer := emaildomain.Answer{
		Question:   question,
		Answer:     reply.Text,
		Topic:      reply.Topic,
		AnsweredAt: u.now(),
	}
	u.repo.RecordAnswer(answer)

	return &answer, nil
}

// corpus is the indexed batch once a pass has completed, otherwise the sample
func (u *workspaceUsecase) corpus() []emaildomain.Email {
	if snapshot := u.repo.Snapshot(); snapshot.Step == emaildomain.StepIndexed {
		return snapshot.Emails
	}
	emails, err := u.sample()
	if err != nil {
		log.Printf("[Workspace] Sample corpus unavailable: %v", err)
		return nil
	}
	return emails
}

func (u *workspaceUsecase) SearchEmails(query string, limit int) []emaildomain.Email {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	type hit struct {
		email emaildomain.Email
		score float64
	}
	var hits []hit
	for _, email := range u.repo.Emails() {
		score := fuzzy.Score(query,
			fuzzy.Field{Text: email.Subject, Weight: 100},
			fuzzy.Field{Text: email.Sender, Weight: 60},
			fuzzy.Field{Text: email.Content, Weight: 30},
		)
		if score > 0 {
			hits = append(hits, hit{email: email, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	emails := make([]emaildomain.Email, 0, min(limit, len(hits)))
	for _, h := range hits {
		if len(emails) >= limit {
			break
		}
		emails = append(emails, h.email)
	}
	return emails
}

func (u *workspaceUsecase) SuggestedQuestions() []string {
	return append([]string(nil), u.questions...)
}

func (u *workspaceUsecase) Snapshot() emaildomain.WorkspaceSnapshot {
	return u.repo.Snapshot()
}

func (u *workspaceUsecase) Summary() emaildomain.WorkspaceSummary {
	snapshot := u.repo.Snapshot()
	counters := u.repo.Counters()

	indexed := 0
	for _, r := range snapshot.IndexResults {
		if _, ok := r.Status.(emaildomain.Indexed); ok {
			indexed++
		}
	}

	processed := 0
	for _, n := range counters {
		processed += n
	}

	return emaildomain.WorkspaceSummary{
		EmailsLoaded:       len(snapshot.Emails),
		EmailsIndexed:      indexed,
		QuestionsProcessed: processed,
		AnswersByTopic:     counters,
		SuggestedQuestions: len(u.questions),
	}
}

func (u *workspaceUsecase) Reset() error {
	if !u.repo.Reset() {
		return ErrIndexingInProgress
	}
	log.Println("[Workspace] Reset")
	return nil
}
