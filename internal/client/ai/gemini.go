package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/savezra/whatsapp-bot/internal/config"
	"github.com/savezra/whatsapp-bot/internal/models"
)

// GeminiClient runs inference through Google's genai SDK. Audio and images
// go inline as typed parts, no separate transcription endpoint needed.
type GeminiClient struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func NewGeminiClient(cfg config.AIConfig, log *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.Model(),
		log:    log.Named("gemini"),
	}, nil
}

func roleFor(role models.ConversationRole) genai.Role {
	if role == models.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func (c *GeminiClient) CompleteJSON(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userMessage string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Content, roleFor(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.6),
		MaxOutputTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func (c *GeminiClient) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "audio/ogg"
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText("Transcribe this voice note verbatim. Reply with only the transcript text."),
		genai.NewPartFromBytes(audio, mimeType),
	}, genai.RoleUser)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty transcription")
	}
	return text, nil
}

func (c *GeminiClient) ExtractBillLine(ctx context.Context, image []byte) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText("You are an OCR expert for Indian bills/receipts. " +
			`Return JSON: { "amount": number, "item": string } ` +
			`amount = total paid in rupees (no currency sign), item = short label like "Pizza", "Groceries", "Taxi".`),
		genai.NewPartFromBytes(image, "image/jpeg"),
	}, genai.RoleUser)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.1),
		MaxOutputTokens:  256,
	})
	if err != nil {
		return "", fmt.Errorf("gemini vision failed: %w", err)
	}

	raw := resp.Text()
	var fields struct {
		Amount float64 `json:"amount"`
		Item   string  `json:"item"`
	}
	parseErr := json.Unmarshal([]byte(raw), &fields)
	if parseErr != nil {
		if span := extractJSONObject(raw); span != "" {
			parseErr = json.Unmarshal([]byte(span), &fields)
		}
	}
	if parseErr == nil {
		if line := billLineFromFields(fields.Amount, fields.Item); line != "" {
			return line, nil
		}
	}

	if line := normalizeBillLine(raw); line != "" {
		return line, nil
	}

	return "", fmt.Errorf("could not read a bill line from image")
}
