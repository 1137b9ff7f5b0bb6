package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	emaildomain "mailqa-backend/internal/email/domain"
	"mailqa-backend/internal/email/repository"
	"mailqa-backend/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBatch = `[
	{"id":"a1","subject":"Budget meeting","sender":"cfo@corp.com","receivedAt":"2024-02-01T09:00:00Z","content":"Budget review on Friday"},
	{"id":"a2","subject":"Invoice 42","sender":"billing@vendor.com","receivedAt":"2024-02-02T09:00:00Z","content":"Please pay"}
]`

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUsecase(t *testing.T, opts Options) (WorkspaceUsecase, repository.WorkspaceRepository) {
	t.Helper()
	repo := repository.NewWorkspaceRepository()
	indexer := &Indexer{
		Delay:      NoDelay,
		Similarity: func() float64 { return 0.9 },
		VectorID:   NewVectorID,
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewWorkspaceUsecase(repo, ai.NewKeywordResponder(ai.DefaultAnswerTable()), indexer, opts), repo
}

func TestWorkspaceUsecase_LoadSample(t *testing.T) {
	var delays []time.Duration
	uc, _ := newTestUsecase(t, Options{
		Delay:  func(d time.Duration) { delays = append(delays, d) },
		Delays: Delays{Load: 2 * time.Second},
	})

	emails, err := uc.LoadSampleEmails()
	require.NoError(t, err)
	assert.Len(t, emails, 5)
	assert.Equal(t, []time.Duration{2 * time.Second}, delays)

	snapshot := uc.Snapshot()
	assert.Equal(t, emaildomain.StepEmailsLoaded, snapshot.Step)
	assert.Equal(t, "sample", snapshot.Source)
}

func TestWorkspaceUsecase_FileSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, []byte(validBatch), 0o600))

	uc, _ := newTestUsecase(t, Options{Sample: FileSample(path)})
	emails, err := uc.LoadSampleEmails()
	require.NoError(t, err)
	assert.Len(t, emails, 2)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"a":1}`), 0o600))
	uc, _ = newTestUsecase(t, Options{Sample: FileSample(bad)})
	_, err = uc.LoadSampleEmails()
	assert.ErrorIs(t, err, ErrNotAList)
}

func TestWorkspaceUsecase_UploadFailureKeepsState(t *testing.T) {
	uc, _ := newTestUsecase(t, Options{})

	_, err := uc.UploadEmails([]byte(validBatch))
	require.NoError(t, err)
	before := uc.Snapshot()

	_, err = uc.UploadEmails([]byte(`[{"id":"x"}]`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "subject", missing.Field)

	assert.Equal(t, before, uc.Snapshot(), "rejected upload must not touch the workspace")
}

func TestWorkspaceUsecase_UploadDelayAfterValidation(t *testing.T) {
	calls := 0
	uc, _ := newTestUsecase(t, Options{
		Delay:  func(time.Duration) { calls++ },
		Delays: Delays{Upload: time.Second},
	})

	_, err := uc.UploadEmails([]byte("not json"))
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Zero(t, calls)

	_, err = uc.UploadEmails([]byte(validBatch))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWorkspaceUsecase_ImportMbox(t *testing.T) {
	uc, _ := newTestUsecase(t, Options{})

	src := "From a@b.com Mon Jan 15 10:30:00 2024\n" +
		"Message-ID: <m1@b.com>\nFrom: Alice <a@b.com>\nSubject: Payment reminder\n" +
		"Date: Mon, 15 Jan 2024 10:30:00 +0000\n\nPlease pay the invoice.\n\n"

	emails, err := uc.ImportMbox(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, emaildomain.Email{
		ID:         "m1@b.com",
		Subject:    "Payment reminder",
		Sender:     "a@b.com",
		ReceivedAt: "2024-01-15T10:30:00Z",
		Content:    "Please pay the invoice.",
	}, emails[0])
	assert.Equal(t, "mbox", uc.Snapshot().Source)
}

func TestWorkspaceUsecase_ImportMboxMissingDate(t *testing.T) {
	uc, _ := newTestUsecase(t, Options{})

	src := "From a@b.com Mon Jan 15 10:30:00 2024\nFrom: a@b.com\nSubject: Hi\n\nbody\n\n"

	_, err := uc.ImportMbox(strings.NewReader(src))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "receivedAt", missing.Field)
	assert.Equal(t, emaildomain.StepInitial, uc.Snapshot().Step)
}

func TestWorkspaceUsecase_IndexEmails(t *testing.T) {
	uc, repo := newTestUsecase(t, Options{})

	_, err := uc.IndexEmails(nil)
	assert.ErrorIs(t, err, ErrNoEmails)

	_, err = uc.UploadEmails([]byte(validBatch))
	require.NoError(t, err)

	var lengths []int
	results, err := uc.IndexEmails(func(partial []emaildomain.IndexResult) {
		lengths = append(lengths, len(partial))
		published, indexing := repo.IndexResults()
		assert.Len(t, published, len(partial), "workspace sees each partial result")
		assert.True(t, indexing)
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []int{1, 2}, lengths)

	snapshot := uc.Snapshot()
	assert.Equal(t, emaildomain.StepIndexed, snapshot.Step)
	assert.False(t, snapshot.Indexing)
	assert.Equal(t, results, snapshot.IndexResults)
}

// swappingRepository replaces the stored batch the moment the usecase reads
// it, the way a concurrent upload landing just before a pass would.
type swappingRepository struct {
	repository.WorkspaceRepository
	replacement []emaildomain.Email
	swapped     bool
}

func (r *swappingRepository) swap() {
	if !r.swapped {
		r.swapped = true
		r.WorkspaceRepository.ReplaceEmails("upload", r.replacement)
	}
}

func (r *swappingRepository) Emails() []emaildomain.Email {
	emails := r.WorkspaceRepository.Emails()
	r.swap()
	return emails
}

func (r *swappingRepository) BeginIndexing() ([]emaildomain.Email, bool) {
	r.swap()
	return r.WorkspaceRepository.BeginIndexing()
}

func TestWorkspaceUsecase_IndexCoversStoredBatch(t *testing.T) {
	replacement, err := ValidateEmails([]byte(validBatch))
	require.NoError(t, err)

	repo := &swappingRepository{WorkspaceRepository: repository.NewWorkspaceRepository(), replacement: replacement}
	require.True(t, repo.ReplaceEmails("sample", emaildomain.SampleEmails()))

	indexer := &Indexer{Similarity: func() float64 { return 0.8 }, VectorID: NewVectorID}
	uc := NewWorkspaceUsecase(repo, ai.NewKeywordResponder(ai.DefaultAnswerTable()), indexer, Options{})

	results, err := uc.IndexEmails(nil)
	require.NoError(t, err)

	snapshot := uc.Snapshot()
	assert.Equal(t, emaildomain.StepIndexed, snapshot.Step)
	require.Len(t, results, len(snapshot.Emails))
	for i, email := range snapshot.Emails {
		assert.Equal(t, email.ID, results[i].ID, "results belong to the stored batch")
	}
	assert.Equal(t, results, snapshot.IndexResults)
}

func TestWorkspaceUsecase_IndexingIsExclusive(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	repo := repository.NewWorkspaceRepository()
	indexer := &Indexer{
		Delay: func(time.Duration) {
			once.Do(func() { close(started) })
			<-release
		},
		Similarity: func() float64 { return 0.8 },
		VectorID:   NewVectorID,
	}
	uc := NewWorkspaceUsecase(repo, ai.NewKeywordResponder(ai.DefaultAnswerTable()), indexer, Options{})

	_, err := uc.UploadEmails([]byte(validBatch))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := uc.IndexEmails(nil)
		done <- err
	}()
	<-started

	_, err = uc.IndexEmails(nil)
	assert.ErrorIs(t, err, ErrIndexingInProgress)
	_, err = uc.UploadEmails([]byte(validBatch))
	assert.ErrorIs(t, err, ErrIndexingInProgress)
	assert.ErrorIs(t, uc.Reset(), ErrIndexingInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, emaildomain.StepIndexed, uc.Snapshot().Step)
}

func TestWorkspaceUsecase_AskQuestion(t *testing.T) {
	var delays []time.Duration
	uc, _ := newTestUsecase(t, Options{
		Delay:  func(d time.Duration) { delays = append(delays, d) },
		Delays: Delays{Answer: 2 * time.Second},
	})
	table := ai.DefaultAnswerTable()

	answer, err := uc.AskQuestion("  What meetings are scheduled?  ")
	require.NoError(t, err)
	assert.Equal(t, "What meetings are scheduled?", answer.Question)
	assert.Equal(t, table.Groups[0].Answer, answer.Answer)
	assert.Equal(t, emaildomain.TopicMeeting, answer.Topic)
	assert.Equal(t, fixedNow, answer.AnsweredAt)
	assert.Equal(t, []time.Duration{2 * time.Second}, delays)

	answer, err = uc.AskQuestion("Random unrelated text")
	require.NoError(t, err)
	assert.Equal(t, table.Fallback, answer.Answer)

	require.NotNil(t, uc.Snapshot().LastAnswer)
	assert.Equal(t, "Random unrelated text", uc.Snapshot().LastAnswer.Question)
}

func TestWorkspaceUsecase_AskEmptyQuestion(t *testing.T) {
	calls := 0
	uc, _ := newTestUsecase(t, Options{Delay: func(time.Duration) { calls++ }})

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := uc.AskQuestion(q)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
	assert.Zero(t, calls, "no delay for rejected questions")
	assert.Zero(t, uc.Summary().QuestionsProcessed)
}

type recordingResponder struct {
	corpus []emaildomain.Email
}

func (r *recordingResponder) Respond(_ context.Context, _ string, corpus []emaildomain.Email) (ai.Reply, error) {
	r.corpus = corpus
	return ai.Reply{Text: "ok", Topic: emaildomain.TopicGeneral}, nil
}

func TestWorkspaceUsecase_AnswerCorpus(t *testing.T) {
	responder := &recordingResponder{}
	indexer := &Indexer{Similarity: func() float64 { return 0.8 }, VectorID: NewVectorID}
	uc := NewWorkspaceUsecase(repository.NewWorkspaceRepository(), responder, indexer, Options{})

	_, err := uc.AskQuestion("anything")
	require.NoError(t, err)
	assert.Equal(t, emaildomain.SampleEmails(), responder.corpus, "sample corpus before indexing")

	_, err = uc.UploadEmails([]byte(validBatch))
	require.NoError(t, err)
	_, err = uc.IndexEmails(nil)
	require.NoError(t, err)

	_, err = uc.AskQuestion("anything")
	require.NoError(t, err)
	require.Len(t, responder.corpus, 2)
	assert.Equal(t, "a1", responder.corpus[0].ID, "indexed batch after a pass")
}

type failingResponder struct{}

func (failingResponder) Respond(context.Context, string, []emaildomain.Email) (ai.Reply, error) {
	return ai.Reply{}, errors.New("engine down")
}

func TestWorkspaceUsecase_ResponderError(t *testing.T) {
	uc := NewWorkspaceUsecase(repository.NewWorkspaceRepository(), failingResponder{}, NewIndexer(NoDelay, 0), Options{})

	_, err := uc.AskQuestion("hello")
	assert.ErrorContains(t, err, "engine down")
	assert.Zero(t, uc.Summary().QuestionsProcessed)
}

func TestWorkspaceUsecase_SearchEmails(t *testing.T) {
	uc, _ := newTestUsecase(t, Options{})
	_, err := uc.LoadSampleEmails()
	require.NoError(t, err)

	hits := uc.SearchEmails("invoce", 0)
	require.NotEmpty(t, hits)
	assert.Equal(t, "3", hits[0].ID)

	hits = uc.SearchEmails("company.com", 2)
	assert.Len(t, hits, 2, "limit applies")

	assert.Empty(t, uc.SearchEmails("zzzzqqqq", 10))
	assert.Empty(t, uc.SearchEmails("", 10))
}

func TestWorkspaceUsecase_SummaryAndReset(t *testing.T) {
	uc, _ := newTestUsecase(t, Options{})

	_, err := uc.LoadSampleEmails()
	require.NoError(t, err)
	_, err = uc.IndexEmails(nil)
	require.NoError(t, err)
	for _, q := range []string{"Any invoices due?", "payment status", "security policy"} {
		_, err := uc.AskQuestion(q)
		require.NoError(t, err)
	}

	summary := uc.Summary()
	assert.Equal(t, 5, summary.EmailsLoaded)
	assert.Equal(t, 5, summary.EmailsIndexed)
	assert.Equal(t, 3, summary.QuestionsProcessed)
	assert.Equal(t, 2, summary.AnswersByTopic[emaildomain.TopicBilling])
	assert.Equal(t, 1, summary.AnswersByTopic[emaildomain.TopicSecurity])
	assert.Equal(t, 3, summary.SuggestedQuestions)

	require.NoError(t, uc.Reset())
	summary = uc.Summary()
	assert.Zero(t, summary.EmailsLoaded)
	assert.Zero(t, summary.QuestionsProcessed)
	assert.Equal(t, emaildomain.StepInitial, uc.Snapshot().Step)
}

func TestWorkspaceUsecase_SuggestedQuestionsAreCopied(t *testing.T) {
	uc, _ := newTestUsecase(t, Options{})

	questions := uc.SuggestedQuestions()
	require.Len(t, questions, 3)
	questions[0] = "changed"

	assert.NotEqual(t, "changed", uc.SuggestedQuestions()[0])
}
