package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^GMO-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for range 100 {
		number := NewOrderNumber()
		assert.Regexp(t, pattern, number)
		assert.False(t, seen[number], "order numbers must not repeat")
		seen[number] = true
	}
}

func TestBookingQRCode(t *testing.T) {
	png, err := BookingQRCode("GM123456")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestChatbotReplyKeywords(t *testing.T) {
	assert.Contains(t, ChatbotReply("how do I contact you?"), "Phone")
	assert.Contains(t, ChatbotReply("who are you"), "Gaurav Motors")
	assert.Contains(t, ChatbotReply("is there a free slot tomorrow"), "appointment")
	assert.Contains(t, ChatbotReply("what does it cost"), "prices")
	assert.Contains(t, ChatbotReply("my car had a BREAKDOWN"), "24/7 helpline")
	assert.Contains(t, ChatbotReply("hello"), "I'm here to help")
}
