package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/client/ai"
	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/prompts"
)

// AIService turns a user message plus conversation history into a typed
// Action. It never returns an error: inference failures degrade to a safe
// chat action so the conversation keeps moving.
type AIService struct {
	client         ai.CompletionClient
	contextBuilder *ContextBuilder
	log            *zap.Logger
}

func NewAIService(client ai.CompletionClient, contextBuilder *ContextBuilder, log *zap.Logger) *AIService {
	return &AIService{
		client:         client,
		contextBuilder: contextBuilder,
		log:            log.Named("ai"),
	}
}

// GetResponse assembles the system prompt with the user's factual context,
// sends the full conversation to the model and parses its JSON reply.
func (s *AIService) GetResponse(ctx context.Context, user *models.User, userMessage string) models.Action {
	userContext := s.contextBuilder.BuildUserContext(ctx, user)
	systemPrompt := prompts.SystemPrompt(userContext)

	s.log.Debug("calling inference provider",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.Int("history_len", len(user.ConversationHistory)))

	raw, err := s.client.CompleteJSON(ctx, systemPrompt, user.ConversationHistory, userMessage)
	if err != nil {
		s.log.Error("inference call failed", zap.Error(err))
		return models.FallbackChatAction()
	}

	action := models.ParseAction(raw)
	s.log.Debug("parsed action",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.String("action", string(action.Type)))

	return action
}
