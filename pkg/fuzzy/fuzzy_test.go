package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"Invoice", "invoice", 0},
		{"invoce", "invoice", 1},
		{"café", "cafe", 0},
	}

	for _, tt := range tests {
		got := distance([]rune(Normalize(tt.a)), []rune(Normalize(tt.b)))
		assert.Equal(t, tt.want, got, "%q vs %q", tt.a, tt.b)
	}
}

func TestScore_TypoAndPrefix(t *testing.T) {
	subject := Field{Text: "Quarterly Business Review Meeting", Weight: 100}

	assert.Greater(t, Score("review", subject), 0.0)
	assert.Greater(t, Score("meetng", subject), 0.0, "one typo")
	assert.Greater(t, Score("secur", Field{Text: "Security Alert", Weight: 100}), 0.0, "prefix")
	assert.Zero(t, Score("", subject))
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 1, Threshold("abc"))
	assert.Equal(t, 2, Threshold("invoice"))
	assert.Equal(t, 3, Threshold("password"))
}

func TestScore(t *testing.T) {
	exact := Score("invoice", Field{Text: "Invoice #INV-2024-001", Weight: 100})
	typo := Score("invoce", Field{Text: "Invoice #INV-2024-001", Weight: 100})
	none := Score("barbecue", Field{Text: "Invoice #INV-2024-001", Weight: 100})

	assert.Greater(t, exact, typo)
	assert.Greater(t, typo, 0.0)
	assert.Zero(t, none)

	subject := Score("security", Field{Text: "Security Alert", Weight: 100}, Field{Text: "hr@company.com", Weight: 60})
	sender := Score("security", Field{Text: "Team Event", Weight: 100}, Field{Text: "security@company.com", Weight: 60})
	assert.Greater(t, subject, sender)
}
