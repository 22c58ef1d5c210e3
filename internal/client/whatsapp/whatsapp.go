// Package whatsapp is a thin client for the WhatsApp Cloud (Graph) API:
// sending text, read receipts and media download.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/config"
)

// MaxMessageLength stays under the platform's ~4096 character cap.
const MaxMessageLength = 4000

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *zap.Logger
}

func NewClient(cfg config.WhatsAppConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL:     fmt.Sprintf("https://graph.facebook.com/%s/%s", cfg.APIVersion(), cfg.PhoneNumberID()),
		accessToken: cfg.AccessToken(),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log.Named("whatsapp"),
	}
}

type textPayload struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type sendMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type markReadRequest struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

// SendText delivers a text reply, splitting messages over the platform cap
// into multiple sends.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	chunks := SplitMessage(text, MaxMessageLength)

	for _, chunk := range chunks {
		req := sendMessageRequest{
			MessagingProduct: "whatsapp",
			RecipientType:    "individual",
			To:               to,
			Type:             "text",
			Text:             textPayload{PreviewURL: false, Body: chunk},
		}
		if err := c.post(ctx, "/messages", req); err != nil {
			return fmt.Errorf("failed to send whatsapp message: %w", err)
		}
	}

	c.log.Info("message sent", zap.String("to", to), zap.Int("chunks", len(chunks)))
	return nil
}

// MarkAsRead flips the blue ticks. Failures are logged and swallowed, a
// missing receipt never blocks the reply.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) {
	req := markReadRequest{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}
	if err := c.post(ctx, "/messages", req); err != nil {
		c.log.Warn("failed to mark message as read", zap.String("message_id", messageID), zap.Error(err))
	}
}

// DownloadMedia resolves a media ID to its temporary URL, then fetches the
// binary. Both calls carry the access token.
func (c *Client) DownloadMedia(ctx context.Context, mediaID, apiVersion string) ([]byte, error) {
	metaURL := fmt.Sprintf("https://graph.facebook.com/%s/%s", apiVersion, mediaID)

	metaReq, err := http.NewRequestWithContext(ctx, http.MethodGet, metaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build media lookup request: %w", err)
	}
	metaReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	metaResp, err := c.httpClient.Do(metaReq)
	if err != nil {
		return nil, fmt.Errorf("media lookup failed: %w", err)
	}
	defer metaResp.Body.Close()

	metaBody, err := io.ReadAll(metaResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media lookup response: %w", err)
	}
	if metaResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media lookup returned %d: %s", metaResp.StatusCode, strings.TrimSpace(string(metaBody)))
	}

	var meta struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(metaBody, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode media lookup response: %w", err)
	}
	if meta.URL == "" {
		return nil, fmt.Errorf("media lookup returned no url")
	}

	binReq, err := http.NewRequestWithContext(ctx, http.MethodGet, meta.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build media download request: %w", err)
	}
	binReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	binResp, err := c.httpClient.Do(binReq)
	if err != nil {
		return nil, fmt.Errorf("media download failed: %w", err)
	}
	defer binResp.Body.Close()

	if binResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media download returned %d", binResp.StatusCode)
	}

	data, err := io.ReadAll(binResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media payload: %w", err)
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// SplitMessage chunks long text at line boundaries, falling back to spaces
// and finally a hard cut. A newline split is only taken when it lands in the
// second half of the window.
func SplitMessage(text string, maxLength int) []string {
	if len(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	remaining := text

	for len(remaining) > 0 {
		if len(remaining) <= maxLength {
			chunks = append(chunks, remaining)
			break
		}

		window := remaining[:maxLength+1]
		splitIndex := strings.LastIndex(window, "\n")
		if splitIndex == -1 || splitIndex < maxLength/2 {
			splitIndex = strings.LastIndex(window, " ")
		}
		if splitIndex <= 0 {
			splitIndex = maxLength
		}

		chunks = append(chunks, remaining[:splitIndex])
		remaining = strings.TrimLeft(remaining[splitIndex:], " \n\t")
	}

	return chunks
}
