package handlers

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/client/whatsapp"
	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/services"
)

// Intent is the first-pass classification of an inbound text. Everything not
// matched by a fixed rule goes to inference.
type Intent int

const (
	IntentAI Intent = iota
	IntentStrictOn
	IntentStrictOff
	IntentGreeting
	IntentForecast
	IntentHealth
)

const (
	strictOnReply  = "Strict mode ON. Now I'll be a bit more honest and direct on big non-essential spends - almost like a money coach + parent combo."
	strictOffReply = "Strict mode OFF. I'll keep things softer and more neutral from now on."

	welcomeMessage = "Hi 👋\n" +
		"I'm Savezra, your personal money coach on WhatsApp.\n\n" +
		"I help you understand where your money is going, cut unnecessary spends, and build simple habits to save, invest and grow wealth - without boring spreadsheets or heavy jargon.\n\n" +
		"Think of me as your money partner who helps you make better decisions step by step 💸📈\n\n" +
		"Over time, I can help you with:\n" +
		"• Tracking your daily expenses\n" +
		"• Finding \"money leaks\"\n" +
		"• Monthly savings & budget planning\n" +
		"• Simple investment guidance based on your goals\n" +
		"• Emergency fund & future planning\n" +
		"• Tax planning & ITR guidance:\n" +
		"  - Which ITR form may apply\n" +
		"  - What income & deductions to consider\n" +
		"  - How to stay compliant and avoid last-minute tax stress\n\n" +
		"We'll go at your pace. Everything stays simple, practical and personalised.\n\n" +
		"Whenever you're ready, reply with one line about your situation. For example:\n" +
		"• \"I don't know where my salary goes\"\n" +
		"• \"I overspend on food & clothes\"\n" +
		"• \"I need to save for my marriage\"\n\n" +
		"Note: I am not a SEBI/RBI registered advisor. Treat this as education, not guaranteed financial advice."
)

var greetings = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
	"start": true,
}

// ClassifyIntent applies the fixed routing rules, in priority order. Strict
// mode commands win over everything, so "start strict mode on" never reads
// as a greeting.
func ClassifyIntent(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	hasStrict := strings.Contains(lower, "strict")
	hasOn := strings.Contains(lower, " on") ||
		strings.HasPrefix(lower, "on ") ||
		strings.Contains(lower, "enable") ||
		strings.Contains(lower, "start")
	hasOff := strings.Contains(lower, "off") ||
		strings.Contains(lower, "disable") ||
		strings.Contains(lower, "stop") ||
		strings.Contains(lower, "remove")

	switch {
	case hasStrict && hasOn:
		return IntentStrictOn
	case hasStrict && hasOff:
		return IntentStrictOff
	case greetings[lower]:
		return IntentGreeting
	case strings.HasPrefix(lower, "impact") ||
		strings.HasPrefix(lower, "plan") ||
		strings.HasPrefix(lower, "save more"):
		return IntentForecast
	case lower == "health" || lower == "score" || strings.Contains(lower, "financial health"):
		return IntentHealth
	default:
		return IntentAI
	}
}

// Router runs the text pipeline shared by typed, transcribed and
// vision-extracted messages.
type Router struct {
	whatsappClient  *whatsapp.Client
	userService     *services.UserService
	aiService       *services.AIService
	dispatcher      *services.Dispatcher
	forecastService *services.ForecastService
	healthService   *services.HealthService
	log             *zap.Logger
}

func NewRouter(
	whatsappClient *whatsapp.Client,
	userService *services.UserService,
	aiService *services.AIService,
	dispatcher *services.Dispatcher,
	forecastService *services.ForecastService,
	healthService *services.HealthService,
	log *zap.Logger,
) *Router {
	return &Router{
		whatsappClient:  whatsappClient,
		userService:     userService,
		aiService:       aiService,
		dispatcher:      dispatcher,
		forecastService: forecastService,
		healthService:   healthService,
		log:             log.Named("router"),
	}
}

// ProcessText runs one inbound text end to end: read receipt, user load,
// streak, fixed-intent shortcuts, then the inference round trip.
func (r *Router) ProcessText(ctx context.Context, from, text, messageID, profileName string) error {
	start := time.Now()

	r.whatsappClient.MarkAsRead(ctx, messageID)

	user, err := r.userService.FindOrCreateUser(ctx, from, profileName)
	if err != nil {
		return err
	}

	user.UpdateStreak(time.Now())

	switch ClassifyIntent(text) {
	case IntentStrictOn:
		user.StrictMode = true
		if err := r.userService.Save(ctx, user); err != nil {
			return err
		}
		return r.whatsappClient.SendText(ctx, from, strictOnReply)

	case IntentStrictOff:
		user.StrictMode = false
		if err := r.userService.Save(ctx, user); err != nil {
			return err
		}
		return r.whatsappClient.SendText(ctx, from, strictOffReply)

	case IntentGreeting:
		// fresh start, drop old context so the model doesn't drag past topics
		user.ConversationHistory = nil
		if err := r.userService.Save(ctx, user); err != nil {
			return err
		}
		r.log.Info("sent scripted welcome", zap.String("whatsapp_id", from))
		return r.whatsappClient.SendText(ctx, from, welcomeMessage)

	case IntentForecast:
		reply, err := r.forecastService.SavingsImpactText(ctx, user, text)
		if err != nil {
			return err
		}
		if err := r.userService.Save(ctx, user); err != nil {
			return err
		}
		r.log.Info("sent savings forecast", zap.String("whatsapp_id", from))
		return r.whatsappClient.SendText(ctx, from, reply)

	case IntentHealth:
		reply, err := r.healthService.MonthlyHealthText(ctx, user)
		if err != nil {
			return err
		}
		if err := r.userService.Save(ctx, user); err != nil {
			return err
		}
		r.log.Info("sent monthly health score", zap.String("whatsapp_id", from))
		return r.whatsappClient.SendText(ctx, from, reply)
	}

	user.AddToConversation(models.RoleUser, text)

	action := r.aiService.GetResponse(ctx, user, text)

	r.log.Info("inference response received",
		zap.String("whatsapp_id", from),
		zap.String("action", string(action.Type)),
		zap.Duration("elapsed", time.Since(start)))

	reply := r.dispatcher.Dispatch(ctx, user, action)

	user.AddToConversation(models.RoleAssistant, reply)
	if err := r.userService.Save(ctx, user); err != nil {
		return err
	}

	if err := r.whatsappClient.SendText(ctx, from, reply); err != nil {
		return err
	}

	r.log.Info("reply sent",
		zap.String("whatsapp_id", from),
		zap.String("action", string(action.Type)),
		zap.Duration("total_elapsed", time.Since(start)))

	return nil
}
