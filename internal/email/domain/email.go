package domain

// Email is one uploaded or sample message. All fields are required and non-empty.
type Email struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	Sender     string `json:"sender"`
	ReceivedAt string `json:"receivedAt"`
	Content    string `json:"content"`
}

// RequiredEmailFields lists the upload keys in the order they are checked.
var RequiredEmailFields = [...]string{"id", "subject", "sender", "receivedAt", "content"}
