package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	emaildomain "mailqa-backend/internal/email/domain"

	"github.com/xeipuuv/gojsonschema"
)

const emailBatchSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id":         {"type": "string"},
			"subject":    {"type": "string"},
			"sender":     {"type": "string"},
			"receivedAt": {"type": "string"},
			"content":    {"type": "string"}
		}
	}
}`

var batchSchema = mustCompileSchema(emailBatchSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile email batch schema: %v", err))
	}
	return schema
}

// ValidateEmails parses an uploaded batch and checks every record.
// Records are scanned in order and fields in RequiredEmailFields order; the
// first missing value rejects the whole batch. The records are returned as
// uploaded, without trimming.
func ValidateEmails(raw []byte) ([]emaildomain.Email, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	items, ok := decoded.([]interface{})
	if !ok {
		return nil, ErrNotAList
	}

	for i, item := range items {
		record, _ := item.(map[string]interface{})
		for _, field := range emaildomain.RequiredEmailFields {
			if !truthy(record[field]) {
				return nil, &MissingFieldError{Index: i, Field: field}
			}
		}
	}

	result, err := batchSchema.Validate(gojsonschema.NewGoLoader(decoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if !result.Valid() {
		return nil, firstInvalidField(result.Errors())
	}

	// Only the checked keys are read; case-variant duplicates like "ID" are ignored
	emails := make([]emaildomain.Email, 0, len(items))
	for _, item := range items {
		record := item.(map[string]interface{})
		emails = append(emails, emaildomain.Email{
			ID:         record["id"].(string),
			Subject:    record["subject"].(string),
			Sender:     record["sender"].(string),
			ReceivedAt: record["receivedAt"].(string),
			Content:    record["content"].(string),
		})
	}
	return emails, nil
}

// truthy treats absent, null, "", false and 0 as missing.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return true
	}
}

// firstInvalidField reports the schema error with the lowest record index,
// then the earliest field in RequiredEmailFields order.
func firstInvalidField(errs []gojsonschema.ResultError) error {
	var first *InvalidFieldError
	firstRank := 0
	for _, re := range errs {
		invalid := invalidFieldFromSchema(re)
		rank := fieldRank(invalid.Field)
		if first == nil || invalid.Index < first.Index || (invalid.Index == first.Index && rank < firstRank) {
			first, firstRank = invalid, rank
		}
	}
	return first
}

func fieldRank(field string) int {
	for i, f := range emaildomain.RequiredEmailFields {
		if f == field {
			return i
		}
	}
	return len(emaildomain.RequiredEmailFields)
}

// invalidFieldFromSchema turns a schema error on "<index>.<field>" into an InvalidFieldError.
func invalidFieldFromSchema(re gojsonschema.ResultError) *InvalidFieldError {
	index, field := -1, re.Field()
	if dot := strings.IndexByte(field, '.'); dot > 0 {
		if n, err := strconv.Atoi(field[:dot]); err == nil {
			index, field = n, field[dot+1:]
		}
	}
	return &InvalidFieldError{Index: index, Field: field, Detail: re.Description()}
}
