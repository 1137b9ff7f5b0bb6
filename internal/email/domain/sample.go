package domain

// SampleEmails returns the built-in batch used when no file is uploaded.
// Each call returns a fresh slice.
func SampleEmails() []Email {
	return []Email{
		{
			ID:         "1",
			Subject:    "Quarterly Business Review Meeting",
			Sender:     "john.doe@company.com",
			ReceivedAt: "2024-01-15T10:30:00Z",
			Content:    "Please join us for the quarterly business review meeting scheduled for next week. We will discuss Q4 performance, budget planning for next year, and strategic initiatives.",
		},
		{
			ID:         "2",
			Subject:    "Project Update: AI Integration",
			Sender:     "sarah.smith@company.com",
			ReceivedAt: "2024-01-15T14:22:00Z",
			Content:    "The AI integration project is progressing well. We have completed the initial phase of data collection and are now moving to the model training stage. Expected completion by end of month.",
		},
		{
			ID:         "3",
			Subject:    "Invoice #INV-2024-001",
			Sender:     "billing@vendor.com",
			ReceivedAt: "2024-01-16T09:15:00Z",
			Content:    "Please find attached the invoice for services rendered in December 2023. Total amount due: $15,750. Payment terms: Net 30 days. Please remit payment by February 15, 2024.",
		},
		{
			ID:         "4",
			Subject:    "Team Building Event Invitation",
			Sender:     "hr@company.com",
			ReceivedAt: "2024-01-16T16:45:00Z",
			Content:    "You are invited to our annual team building event. This year we are planning outdoor activities including hiking, team challenges, and a barbecue dinner. Date: March 15, 2024.",
		},
		{
			ID:         "5",
			Subject:    "Security Alert: Password Reset Required",
			Sender:     "security@company.com",
			ReceivedAt: "2024-01-17T08:00:00Z",
			Content:    "As part of our security policy, all users are required to reset their passwords every 90 days. Your password expires in 3 days. Please use the company portal to update your credentials.",
		},
	}
}
