// Package ai abstracts the inference providers behind a single client
// interface. The OpenAI-compatible client covers Groq and any endpoint
// speaking the same wire format; the Gemini client uses Google's SDK.
package ai

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/config"
	"github.com/savezra/whatsapp-bot/internal/models"
)

// CompletionClient is what the conversation pipeline needs from a provider.
type CompletionClient interface {
	// CompleteJSON sends the system prompt, prior turns and the new user
	// message and returns the raw model output, expected to be one JSON
	// object per the prompt contract.
	CompleteJSON(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userMessage string) (string, error)

	// TranscribeAudio converts a voice note to text.
	TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error)

	// ExtractBillLine reads a bill or receipt image and returns a
	// "Spent X on Y" line, or an error when nothing usable was read.
	ExtractBillLine(ctx context.Context, image []byte) (string, error)
}

// New builds the provider named in the config.
func New(cfg config.AIConfig, log *zap.Logger) (CompletionClient, error) {
	switch cfg.Provider() {
	case "openai":
		return NewOpenAIClient(cfg, log), nil
	case "gemini":
		return NewGeminiClient(cfg, log)
	default:
		return nil, fmt.Errorf("unknown ai provider: %q", cfg.Provider())
	}
}

var billLinePattern = regexp.MustCompile(`(?i)spent\s+([\d,.]+)\s+on\s+(.+)`)

// normalizeBillLine canonicalizes free-form vision output into
// "Spent <amount> on <item>". Returns "" when the text does not match.
func normalizeBillLine(raw string) string {
	m := billLinePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ""
	}
	amt, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || amt <= 0 {
		return ""
	}
	item := strings.TrimRight(m[2], " .")
	if item == "" {
		item = "purchase"
	}
	return fmt.Sprintf("Spent %d on %s", int(math.Round(amt)), item)
}

// billLineFromFields builds the canonical line from structured OCR output.
func billLineFromFields(amount float64, item string) string {
	if amount <= 0 {
		return ""
	}
	item = strings.TrimSpace(item)
	if item == "" {
		item = "purchase"
	}
	return fmt.Sprintf("Spent %d on %s", int(math.Round(amount)), item)
}

// extractJSONObject pulls the first {...} span out of text that may carry
// prose or markdown fences around the JSON.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
