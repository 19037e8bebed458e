package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestIsRateLimited(t *testing.T) {
	quota := genai.APIError{Code: 429, Message: "quota exceeded"}
	assert.True(t, IsRateLimited(quota))
	assert.True(t, IsRateLimited(fmt.Errorf("gemini generate failed: %w", quota)))

	assert.False(t, IsRateLimited(genai.APIError{Code: 500, Message: "boom"}))
	assert.False(t, IsRateLimited(errors.New("plain failure")))
	assert.False(t, IsRateLimited(nil))
}

func TestUnavailable(t *testing.T) {
	var gen Generator = Unavailable{}
	_, err := gen.Generate(context.Background(), "anything")
	assert.Error(t, err)
	assert.False(t, IsRateLimited(err))

	var cls Classifier = Unavailable{}
	assert.Equal(t, "other", cls.Classify(context.Background(), "where is my refund"))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "", nil)
	assert.Error(t, err)
}
