package delivery

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	emaildomain "mailqa-backend/internal/email/domain"
	emaildto "mailqa-backend/internal/email/dto"
	"mailqa-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	workspaceUsecase usecase.WorkspaceUsecase
	maxUploadBytes   int64
}

func NewWorkspaceHandler(workspaceUsecase usecase.WorkspaceUsecase, maxUploadBytes int64) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceUsecase: workspaceUsecase,
		maxUploadBytes:   maxUploadBytes,
	}
}

// GET /api/workspace
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspaceUsecase.Snapshot())
}

// DELETE /api/workspace
func (h *WorkspaceHandler) ResetWorkspace(c *gin.Context) {
	if err := h.workspaceUsecase.Reset(); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.workspaceUsecase.Snapshot())
}

// POST /api/emails/sample
func (h *WorkspaceHandler) LoadSampleEmails(c *gin.Context) {
	emails, err := h.workspaceUsecase.LoadSampleEmails()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

// POST /api/emails/upload
// Accepts a multipart "file" field or the JSON batch as the raw request body
func (h *WorkspaceHandler) UploadEmails(c *gin.Context) {
	raw, err := h.readUpload(c)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	emails, err := h.workspaceUsecase.UploadEmails(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

// POST /api/emails/import/mbox
func (h *WorkspaceHandler) ImportMbox(c *gin.Context) {
	raw, err := h.readUpload(c)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	emails, err := h.workspaceUsecase.ImportMbox(bytes.NewReader(raw))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

// GET /api/emails
func (h *WorkspaceHandler) GetEmails(c *gin.Context) {
	emails := h.workspaceUsecase.Snapshot().Emails
	if emails == nil {
		emails = []emaildomain.Email{}
	}
	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

// GET /api/emails/search?q=&limit=
func (h *WorkspaceHandler) SearchEmails(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	emails := h.workspaceUsecase.SearchEmails(query, limit)
	c.JSON(http.StatusOK, emaildto.SearchResponse{Query: query, Emails: emails, Limit: limit})
}

// POST /api/emails/index
// With "Accept: text/event-stream" every partial result set is sent as a
// "progress" event followed by a final "done" event; otherwise the handler
// blocks until the pass is over and answers with JSON.
func (h *WorkspaceHandler) IndexEmails(c *gin.Context) {
	if !strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		results, err := h.workspaceUsecase.IndexEmails(nil)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, emaildto.IndexResponse{Results: results})
		return
	}

	started := false
	results, err := h.workspaceUsecase.IndexEmails(func(partial []emaildomain.IndexResult) {
		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			started = true
		}
		c.SSEvent("progress", emaildto.IndexResponse{Results: partial, Indexing: true})
		c.Writer.Flush()
	})
	if err != nil {
		// Nothing has been streamed yet, so a plain error response still works
		writeError(c, err)
		return
	}

	c.SSEvent("done", emaildto.IndexResponse{Results: results})
	c.Writer.Flush()
}

// GET /api/index
func (h *WorkspaceHandler) GetIndexResults(c *gin.Context) {
	results, indexing := h.workspaceUsecase.IndexResults()
	c.JSON(http.StatusOK, emaildto.IndexResponse{Results: results, Indexing: indexing})
}

// POST /api/questions
func (h *WorkspaceHandler) AskQuestion(c *gin.Context) {
	var req emaildto.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.workspaceUsecase.AskQuestion(req.Question)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// GET /api/questions/suggestions
func (h *WorkspaceHandler) GetSuggestedQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, emaildto.SuggestionsResponse{Questions: h.workspaceUsecase.SuggestedQuestions()})
}

// GET /api/summary
func (h *WorkspaceHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspaceUsecase.Summary())
}

var errEmptyUpload = errors.New("no file uploaded")

func (h *WorkspaceHandler) readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errEmptyUpload
	}
	return raw, nil
}

func writeUploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func writeError(c *gin.Context, err error) {
	var missing *usecase.MissingFieldError
	var invalid *usecase.InvalidFieldError

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, emaildto.ValidationErrorResponse{Error: err.Error(), Field: missing.Field, Index: &missing.Index})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, emaildto.ValidationErrorResponse{Error: err.Error(), Field: invalid.Field, Index: &invalid.Index})
	case usecase.IsValidationError(err), errors.Is(err, usecase.ErrEmptyQuestion):
		c.JSON(http.StatusBadRequest, emaildto.ValidationErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNoEmails), errors.Is(err, usecase.ErrIndexingInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
