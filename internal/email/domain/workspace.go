package domain

import "time"

// Step tracks how far the current interaction has progressed.
type Step string

const (
	StepInitial      Step = "initial"
	StepEmailsLoaded Step = "emails-loaded"
	StepIndexed      Step = "indexed"
)

// Topic is the keyword group an answer was selected from.
type Topic string

const (
	TopicMeeting  Topic = "meeting"
	TopicBilling  Topic = "billing"
	TopicSecurity Topic = "security"
	TopicGeneral  Topic = "general"
)

// Answer is the response to one submitted question.
type Answer struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Topic      Topic     `json:"topic"`
	AnsweredAt time.Time `json:"answered_at"`
}

// WorkspaceSnapshot is a copy of the transient state of one interaction.
type WorkspaceSnapshot struct {
	Step         Step          `json:"step"`
	Source       string        `json:"source,omitempty"` // "sample", "upload" or "mbox"
	Emails       []Email       `json:"emails"`
	IndexResults []IndexResult `json:"index_results"`
	Indexing     bool          `json:"indexing"`
	LastAnswer   *Answer       `json:"last_answer,omitempty"`
}

// WorkspaceSummary holds counters observed during the interaction.
type WorkspaceSummary struct {
	EmailsLoaded       int           `json:"emails_loaded"`
	EmailsIndexed      int           `json:"emails_indexed"`
	QuestionsProcessed int           `json:"questions_processed"`
	AnswersByTopic     map[Topic]int `json:"answers_by_topic"`
	SuggestedQuestions int           `json:"suggested_questions"`
}
