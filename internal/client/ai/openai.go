package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/config"
	"github.com/savezra/whatsapp-bot/internal/models"
)

const (
	whisperModel = "whisper-large-v3"
	visionModel  = "meta-llama/llama-4-scout-17b-16e-instruct"

	maxRetries       = 3
	retryBaseBackoff = 2 * time.Second
)

// OpenAIClient speaks the OpenAI chat-completions wire format, which Groq
// and several other hosts also serve.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewOpenAIClient(cfg config.AIConfig, log *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		baseURL:    strings.TrimRight(cfg.BaseURL(), "/"),
		apiKey:     cfg.APIKey(),
		model:      cfg.Model(),
		httpClient: &http.Client{Timeout: 90 * time.Second},
		log:        log.Named("openai"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userMessage string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	req := chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0.6,
		MaxTokens:      1024,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	return c.chatCompletion(ctx, req)
}

func (c *OpenAIClient) chatCompletion(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to build chat request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			c.log.Warn("rate limited, retrying", zap.Int("attempt", attempt+1))
			lastErr = fmt.Errorf("rate limited: %s", strings.TrimSpace(string(respBody)))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("chat completion returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}

		var parsed chatResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", fmt.Errorf("failed to decode chat response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("chat completion error: %s", parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
			return "", fmt.Errorf("empty response from model")
		}

		return parsed.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *OpenAIClient) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", "voice_note.ogg")
	if err != nil {
		return "", fmt.Errorf("failed to build transcription form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := form.WriteField("model", whisperModel); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize transcription form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("empty transcription")
	}

	return parsed.Text, nil
}

// ExtractBillLine tries JSON-mode OCR first, then falls back to a one-line
// free-text prompt parsed with a regexp.
func (c *OpenAIClient) ExtractBillLine(ctx context.Context, image []byte) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	jsonReq := chatRequest{
		Model:       visionModel,
		Temperature: 0.1,
		MaxTokens:   256,
		ResponseFormat: &responseFormat{
			Type: "json_object",
		},
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{
					Type: "text",
					Text: "You are an OCR expert for Indian bills/receipts. " +
						`Return JSON: { "amount": number, "item": string } ` +
						`amount = total paid in rupees (no currency sign), item = short label like "Pizza", "Groceries", "Taxi".`,
				},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
	}

	if raw, err := c.chatCompletion(ctx, jsonReq); err == nil {
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
		c.log.Warn("vision json mode produced no usable bill line")
	} else {
		c.log.Warn("vision json mode failed", zap.Error(err))
	}

	textReq := chatRequest{
		Model:       visionModel,
		Temperature: 0.1,
		MaxTokens:   128,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{
					Type: "text",
					Text: "Look at this Indian bill or receipt and answer in EXACTLY one sentence:\n" +
						"Spent <amount> on <item>\n" +
						"Example: Spent 790 on Pizza\n" +
						"No extra words, no currency symbols, only that sentence.",
				},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
	}

	raw, err := c.chatCompletion(ctx, textReq)
	if err != nil {
		return "", fmt.Errorf("vision text mode failed: %w", err)
	}
	if line := normalizeBillLine(raw); line != "" {
		return line, nil
	}

	return "", fmt.Errorf("could not read a bill line from image")
}
