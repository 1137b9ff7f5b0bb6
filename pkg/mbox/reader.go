package mbox

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-mbox"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// Message is the subset of an mbox message the workspace needs
type Message struct {
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt time.Time
	Content    string
}

// ReadMessages splits an mbox stream and parses each message.
// Messages without a Message-ID get a random one; missing Date leaves ReceivedAt zero.
// Only the first text/plain (or text/html when no plain part exists) body is kept.
func ReadMessages(r io.Reader) ([]Message, error) {
	reader := mbox.NewReader(r)

	var messages []Message
	for i := 0; ; i++ {
		raw, err := reader.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message %d: %w", i, err)
		}

		msg, err := parseMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message %d: %w", i, err)
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func parseMessage(raw io.Reader) (Message, error) {
	mr, err := mail.CreateReader(raw)
	if err != nil && mr == nil {
		return Message{}, err
	}
	if err != nil {
		// Unknown charset or transfer encoding; headers are still usable
		log.Printf("[Mbox] Partial decode: %v", err)
	}
	defer mr.Close()

	var msg Message
	header := mr.Header

	msg.MessageID, _ = header.MessageID()
	if msg.MessageID == "" {
		msg.MessageID = uuid.New().String()
	}

	if subject, err := header.Subject(); err == nil {
		msg.Subject = subject
	} else {
		msg.Subject = header.Get("Subject")
	}

	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		msg.Sender = from[0].Address
	} else {
		msg.Sender = strings.TrimSpace(header.Get("From"))
	}

	if date, err := header.Date(); err == nil {
		msg.ReceivedAt = date
	}

	msg.Content = readBody(mr)
	return msg, nil
}

func readBody(mr *mail.Reader) string {
	var plain, html string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("[Mbox] Error reading part: %v", err)
			break
		}

		inline, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := inline.ContentType()
		if contentType == "" {
			contentType = "text/plain"
		}

		switch {
		case contentType == "text/plain" && plain == "":
			body, _ := io.ReadAll(part.Body)
			plain = string(body)
		case contentType == "text/html" && html == "":
			body, _ := io.ReadAll(part.Body)
			html = string(body)
		}
	}

	if plain != "" {
		return strings.TrimSpace(plain)
	}
	return strings.TrimSpace(html)
}
