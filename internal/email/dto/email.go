package dto

import emaildomain "mailqa-backend/internal/email/domain"

type EmailsResponse struct {
	Emails []emaildomain.Email `json:"emails"`
	Total  int                 `json:"total"`
}

type SearchResponse struct {
	Query  string              `json:"query"`
	Emails []emaildomain.Email `json:"emails"`
	Limit  int                 `json:"limit"`
}

type IndexResponse struct {
	Results  []emaildomain.IndexResult `json:"results"`
	Indexing bool                      `json:"indexing"`
}

type AskQuestionRequest struct {
	Question string `json:"question"`
}

type SuggestionsResponse struct {
	Questions []string `json:"questions"`
}

// ValidationErrorResponse is returned for a rejected upload.
// Field is set only when a specific record field failed.
type ValidationErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Index *int   `json:"index,omitempty"`
}
