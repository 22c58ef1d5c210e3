package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/client/ai"
	"github.com/savezra/whatsapp-bot/internal/client/whatsapp"
	"github.com/savezra/whatsapp-bot/internal/config"
	"github.com/savezra/whatsapp-bot/internal/dedup"
	"github.com/savezra/whatsapp-bot/internal/models"
)

const processTimeout = 2 * time.Minute

const (
	audioDownloadFallback    = "I couldn't download this audio. Please type your message instead."
	audioTranscribeFallback  = "I couldn't clearly understand this voice note. Please type a short line about your money question."
	imageDownloadFallback    = "I couldn't download this image. Please type your expense like: 'Spent 790 on Pizza'."
	imageUnreadableFallback  = "I couldn't read this bill correctly. Please type a quick line like: 'Spent 790 on Pizza'."
)

// WebhookHandler terminates the WhatsApp webhook: the GET verification
// handshake and the POST message feed.
type WebhookHandler struct {
	cfg            config.WhatsAppConfig
	dedupCache     *dedup.Cache
	router         *Router
	whatsappClient *whatsapp.Client
	aiClient       ai.CompletionClient
	log            *zap.Logger
}

func NewWebhookHandler(
	cfg config.WhatsAppConfig,
	dedupCache *dedup.Cache,
	router *Router,
	whatsappClient *whatsapp.Client,
	aiClient ai.CompletionClient,
	log *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		cfg:            cfg,
		dedupCache:     dedupCache,
		router:         router,
		whatsappClient: whatsappClient,
		aiClient:       aiClient,
		log:            log.Named("webhook"),
	}
}

// Verify answers the platform's subscription handshake by echoing the
// challenge when the verify token matches.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && token == h.cfg.VerifyToken() {
		h.log.Info("webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	h.log.Warn("webhook verification failed", zap.String("mode", mode))
	w.WriteHeader(http.StatusForbidden)
}

// HandleIncoming acks immediately so the platform does not retry, then
// processes each message on its own goroutine behind the dedup gate.
func (h *WebhookHandler) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	var payload models.WebhookPayload
	err := json.NewDecoder(r.Body).Decode(&payload)

	w.WriteHeader(http.StatusOK)

	if err != nil {
		h.log.Warn("failed to decode webhook payload", zap.Error(err))
		return
	}
	if payload.Object == "" || len(payload.Entry) == 0 {
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, message := range change.Value.Messages {
				if message.From == "" || message.ID == "" {
					continue
				}

				h.log.Info("incoming message",
					zap.String("from", message.From),
					zap.String("name", change.Value.ProfileName()),
					zap.String("type", message.Type),
					zap.String("message_id", message.ID))

				if !h.dedupCache.ShouldProcess(message.ID) {
					h.log.Debug("duplicate message, skipping", zap.String("message_id", message.ID))
					continue
				}

				msg := message
				value := change.Value
				requestID := uuid.NewString()

				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
					defer cancel()

					if err := h.routeMessage(ctx, msg, value); err != nil {
						h.log.Error("message processing failed",
							zap.String("request_id", requestID),
							zap.String("message_id", msg.ID),
							zap.Error(err))
					}
				}()
			}
		}
	}
}

// routeMessage dispatches by message type. Audio and images funnel into the
// text pipeline after transcription or OCR.
func (h *WebhookHandler) routeMessage(ctx context.Context, msg models.WebhookMessage, value models.WebhookValue) error {
	from := msg.From
	profileName := value.ProfileName()

	switch msg.Type {
	case "text":
		if msg.Text == nil || msg.Text.Body == "" {
			return nil
		}
		return h.router.ProcessText(ctx, from, msg.Text.Body, msg.ID, profileName)

	case "audio":
		if msg.Audio == nil {
			return nil
		}
		h.whatsappClient.MarkAsRead(ctx, msg.ID)

		data, err := h.whatsappClient.DownloadMedia(ctx, msg.Audio.ID, h.cfg.APIVersion())
		if err != nil {
			h.log.Error("audio download failed", zap.Error(err))
			return h.whatsappClient.SendText(ctx, from, audioDownloadFallback)
		}

		transcript, err := h.aiClient.TranscribeAudio(ctx, data, msg.Audio.MimeType)
		if err != nil {
			h.log.Error("transcription failed", zap.Error(err))
			return h.whatsappClient.SendText(ctx, from, audioTranscribeFallback)
		}

		if err := h.whatsappClient.SendText(ctx, from, `You said: "`+transcript+`"`); err != nil {
			return err
		}
		return h.router.ProcessText(ctx, from, transcript, msg.ID, profileName)

	case "image":
		if msg.Image == nil {
			return nil
		}
		h.whatsappClient.MarkAsRead(ctx, msg.ID)

		caption := msg.Image.Caption

		data, err := h.whatsappClient.DownloadMedia(ctx, msg.Image.ID, h.cfg.APIVersion())
		if err != nil {
			h.log.Error("image download failed", zap.Error(err))
			return h.whatsappClient.SendText(ctx, from, imageDownloadFallback)
		}

		billLine, err := h.aiClient.ExtractBillLine(ctx, data)
		if err == nil && billLine != "" {
			if err := h.whatsappClient.SendText(ctx, from, `I read your bill as: "`+billLine+`".`); err != nil {
				return err
			}
			return h.router.ProcessText(ctx, from, billLine, msg.ID, profileName)
		}
		h.log.Warn("bill extraction failed", zap.Error(err))

		if caption != "" {
			return h.router.ProcessText(ctx, from, caption, msg.ID, profileName)
		}
		return h.whatsappClient.SendText(ctx, from, imageUnreadableFallback)

	default:
		h.log.Debug("ignoring unsupported message type", zap.String("type", msg.Type))
		return nil
	}
}
