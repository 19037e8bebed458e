package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Generator produces a free-form support reply from a context block.
// Implementations return an error rather than a canned string on failure;
// mapping failures to user-facing fallbacks is the router's job.
type Generator interface {
	Generate(ctx context.Context, contextText string) (string, error)
}

// Classifier labels a user message with one intent from the fixed
// vocabulary {refund, delivery, payment, cancel, other}. It never fails:
// any error or out-of-vocabulary output collapses to "other".
type Classifier interface {
	Classify(ctx context.Context, message string) string
}

// DefaultModel is the Gemini model used for both replies and intent labels.
const DefaultModel = "gemini-2.5-flash-lite"

// callTimeout bounds every Gemini call so a stalled upstream can never hang
// a chat request.
const callTimeout = 10 * time.Second

var allowedIntents = map[string]bool{
	"refund":   true,
	"delivery": true,
	"payment":  true,
	"cancel":   true,
	"other":    true,
}

const replyPrompt = `You are a high-performance AI support agent for a food delivery platform.

STRICT RULES:
- Never ask for order ID.
- Never ask for information already provided.
- Do not apologize excessively.
- Avoid corporate phrases like "We understand your frustration".
- Be direct and human.

STYLE:
- Maximum 2-3 sentences.
- Prefer facts over empathy.
- No long paragraphs.

ESCALATION:
Only suggest creating a ticket if the issue cannot be resolved automatically.

CONTEXT:
`

const intentPrompt = `Return ONLY one word from this list:

refund
delivery
payment
cancel
other

Message: `

// Gemini implements Generator and Classifier over the Google GenAI SDK.
type Gemini struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGemini creates a Gemini client. The API key is required.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, log: log}, nil
}

// Generate produces a support reply for the given context block.
func (g *Gemini) Generate(ctx context.Context, contextText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(replyPrompt+contextText),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.3),
			MaxOutputTokens: 120,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", errors.New("gemini returned an empty reply")
	}
	return reply, nil
}

// Classify labels the message with one intent from the fixed vocabulary.
func (g *Gemini) Classify(ctx context.Context, message string) string {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(intentPrompt+message),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0),
			MaxOutputTokens: 8,
		},
	)
	if err != nil {
		g.log.Warn("intent classification failed", zap.Error(err))
		return "other"
	}

	intent := strings.ToLower(strings.TrimSpace(resp.Text()))
	if !allowedIntents[intent] {
		return "other"
	}
	return intent
}

// IsRateLimited reports whether the error came back as a quota or
// rate-limit rejection from the API.
func IsRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	return false
}

// Unavailable is a Generator/Classifier used when no API key is configured.
// Every call fails, which the router turns into its fallback reply, so the
// deterministic rules keep working without Gemini access.
type Unavailable struct{}

func (Unavailable) Generate(ctx context.Context, contextText string) (string, error) {
	return "", errors.New("reply generator is not configured")
}

func (Unavailable) Classify(ctx context.Context, message string) string {
	return "other"
}
