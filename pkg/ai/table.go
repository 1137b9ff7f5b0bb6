package ai

import emaildomain "mailqa-backend/internal/email/domain"

// KeywordGroup maps a set of trigger words to one canned answer
type KeywordGroup struct {
	Topic    emaildomain.Topic `json:"topic"`
	Keywords []string          `json:"keywords"` // lower-case substrings
	Answer   string            `json:"answer"`
}

// AnswerTable is the ordered keyword-to-answer mapping. Groups are tested in order.
type AnswerTable struct {
	Groups   []KeywordGroup `json:"groups"`
	Fallback string         `json:"fallback"`
}

// DefaultAnswerTable returns the canned answers for the built-in sample corpus
func DefaultAnswerTable() AnswerTable {
	return AnswerTable{
		Groups: []KeywordGroup{
			{
				Topic:    emaildomain.TopicMeeting,
				Keywords: []string{"meeting", "schedule"},
				Answer:   "Based on your emails, there is a Quarterly Business Review Meeting scheduled for next week. The meeting will cover Q4 performance, budget planning for next year, and strategic initiatives. Additionally, there's a team building event planned for March 15, 2024, with outdoor activities and a barbecue dinner.",
			},
			{
				Topic:    emaildomain.TopicBilling,
				Keywords: []string{"invoice", "payment", "money"},
				Answer:   "You have one pending invoice (#INV-2024-001) from billing@vendor.com for $15,750. The payment is due by February 15, 2024 (Net 30 days terms). This invoice is for services rendered in December 2023.",
			},
			{
				Topic:    emaildomain.TopicSecurity,
				Keywords: []string{"security", "password", "policy"},
				Answer:   "There's an important security alert: your password expires in 3 days. As per company policy, passwords must be reset every 90 days. You need to use the company portal to update your credentials immediately to maintain account access.",
			},
		},
		Fallback: "Based on the analyzed emails, I found information about business meetings, financial obligations, project updates, team events, and security requirements. Your emails contain a mix of operational updates, administrative tasks, and important deadlines that require attention.",
	}
}

// DefaultSuggestedQuestions returns one prompt per keyword group
func DefaultSuggestedQuestions() []string {
	return []string{
		"What meetings are scheduled and what topics will be discussed?",
		"Are there any pending invoices or payment deadlines I should know about?",
		"What security requirements or policy updates do I need to address?",
	}
}
