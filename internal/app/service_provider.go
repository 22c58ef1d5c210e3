package app

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/client/ai"
	"github.com/savezra/whatsapp-bot/internal/client/db"
	"github.com/savezra/whatsapp-bot/internal/client/db/pg"
	"github.com/savezra/whatsapp-bot/internal/client/whatsapp"
	"github.com/savezra/whatsapp-bot/internal/closer"
	"github.com/savezra/whatsapp-bot/internal/config"
	"github.com/savezra/whatsapp-bot/internal/config/env"
	"github.com/savezra/whatsapp-bot/internal/dedup"
	"github.com/savezra/whatsapp-bot/internal/handlers"
	"github.com/savezra/whatsapp-bot/internal/logger"
	"github.com/savezra/whatsapp-bot/internal/repository"
	"github.com/savezra/whatsapp-bot/internal/services"
)

// ServiceProvider wires the object graph lazily. Every accessor builds its
// dependency on first use and memoizes it.
type ServiceProvider struct {
	serverConfig   config.ServerConfig
	pgConfig       config.PGConfig
	whatsappConfig config.WhatsAppConfig
	aiConfig       config.AIConfig

	logger   *zap.Logger
	dbClient db.Client

	dedupCache *dedup.Cache

	whatsappClient *whatsapp.Client
	aiClient       ai.CompletionClient

	userRepo *repository.UserRepository
	txnRepo  *repository.TransactionRepository
	debtRepo *repository.DebtRepository
	goalRepo *repository.GoalRepository

	userService     *services.UserService
	txnService      *services.TransactionService
	debtService     *services.DebtService
	goalService     *services.GoalService
	contextBuilder  *services.ContextBuilder
	aiService       *services.AIService
	dispatcher      *services.Dispatcher
	healthService   *services.HealthService
	forecastService *services.ForecastService

	router         *handlers.Router
	webhookHandler *handlers.WebhookHandler
	adminHandler   *handlers.AdminHandler
}

func NewServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (s *ServiceProvider) ServerConfig() config.ServerConfig {
	if s.serverConfig == nil {
		cfg, err := env.NewServerConfig()
		if err != nil {
			log.Fatalf("failed to get server config: %v", err)
		}
		s.serverConfig = cfg
	}
	return s.serverConfig
}

func (s *ServiceProvider) PGConfig() config.PGConfig {
	if s.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			log.Fatalf("failed to get pg config: %v", err)
		}
		s.pgConfig = cfg
	}
	return s.pgConfig
}

func (s *ServiceProvider) WhatsAppConfig() config.WhatsAppConfig {
	if s.whatsappConfig == nil {
		cfg, err := env.NewWhatsAppConfig()
		if err != nil {
			log.Fatalf("failed to get whatsapp config: %v", err)
		}
		s.whatsappConfig = cfg
	}
	return s.whatsappConfig
}

func (s *ServiceProvider) AIConfig() config.AIConfig {
	if s.aiConfig == nil {
		cfg, err := env.NewAIConfig()
		if err != nil {
			log.Fatalf("failed to get ai config: %v", err)
		}
		s.aiConfig = cfg
	}
	return s.aiConfig
}

func (s *ServiceProvider) Logger() *zap.Logger {
	if s.logger == nil {
		l, err := logger.New(s.ServerConfig().Env())
		if err != nil {
			log.Fatalf("failed to init logger: %v", err)
		}
		s.logger = l
		closer.Add(func() error {
			_ = l.Sync()
			return nil
		})
	}
	return s.logger
}

func (s *ServiceProvider) DBClient(ctx context.Context) db.Client {
	if s.dbClient == nil {
		cl, err := pg.New(ctx, s.PGConfig().DSN())
		if err != nil {
			log.Fatalf("failed to get db client: %v", err)
		}
		closer.Add(cl.Close)
		s.dbClient = cl
	}
	return s.dbClient
}

func (s *ServiceProvider) SQLDB(ctx context.Context) *sql.DB {
	return s.DBClient(ctx).DB()
}

func (s *ServiceProvider) DedupCache() *dedup.Cache {
	if s.dedupCache == nil {
		s.dedupCache = dedup.New(dedup.DefaultWindow)
		closer.Add(func() error {
			s.dedupCache.Close()
			return nil
		})
	}
	return s.dedupCache
}

func (s *ServiceProvider) WhatsAppClient() *whatsapp.Client {
	if s.whatsappClient == nil {
		s.whatsappClient = whatsapp.NewClient(s.WhatsAppConfig(), s.Logger())
	}
	return s.whatsappClient
}

func (s *ServiceProvider) AIClient() ai.CompletionClient {
	if s.aiClient == nil {
		client, err := ai.New(s.AIConfig(), s.Logger())
		if err != nil {
			log.Fatalf("failed to init ai client: %v", err)
		}
		s.aiClient = client
	}
	return s.aiClient
}

func (s *ServiceProvider) UserRepository(ctx context.Context) *repository.UserRepository {
	if s.userRepo == nil {
		s.userRepo = repository.NewUserRepository(s.SQLDB(ctx))
	}
	return s.userRepo
}

func (s *ServiceProvider) TransactionRepository(ctx context.Context) *repository.TransactionRepository {
	if s.txnRepo == nil {
		s.txnRepo = repository.NewTransactionRepository(s.SQLDB(ctx))
	}
	return s.txnRepo
}

func (s *ServiceProvider) DebtRepository(ctx context.Context) *repository.DebtRepository {
	if s.debtRepo == nil {
		s.debtRepo = repository.NewDebtRepository(s.SQLDB(ctx))
	}
	return s.debtRepo
}

func (s *ServiceProvider) GoalRepository(ctx context.Context) *repository.GoalRepository {
	if s.goalRepo == nil {
		s.goalRepo = repository.NewGoalRepository(s.SQLDB(ctx))
	}
	return s.goalRepo
}

func (s *ServiceProvider) UserService(ctx context.Context) *services.UserService {
	if s.userService == nil {
		s.userService = services.NewUserService(s.UserRepository(ctx), s.Logger())
	}
	return s.userService
}

func (s *ServiceProvider) TransactionService(ctx context.Context) *services.TransactionService {
	if s.txnService == nil {
		s.txnService = services.NewTransactionService(s.TransactionRepository(ctx), s.UserRepository(ctx), s.Logger())
	}
	return s.txnService
}

func (s *ServiceProvider) DebtService(ctx context.Context) *services.DebtService {
	if s.debtService == nil {
		s.debtService = services.NewDebtService(s.DebtRepository(ctx), s.Logger())
	}
	return s.debtService
}

func (s *ServiceProvider) GoalService(ctx context.Context) *services.GoalService {
	if s.goalService == nil {
		s.goalService = services.NewGoalService(s.GoalRepository(ctx), s.Logger())
	}
	return s.goalService
}

func (s *ServiceProvider) ContextBuilder(ctx context.Context) *services.ContextBuilder {
	if s.contextBuilder == nil {
		s.contextBuilder = services.NewContextBuilder(
			s.TransactionRepository(ctx),
			s.DebtRepository(ctx),
			s.GoalRepository(ctx),
			s.Logger(),
		)
	}
	return s.contextBuilder
}

func (s *ServiceProvider) AIService(ctx context.Context) *services.AIService {
	if s.aiService == nil {
		s.aiService = services.NewAIService(s.AIClient(), s.ContextBuilder(ctx), s.Logger())
	}
	return s.aiService
}

func (s *ServiceProvider) Dispatcher(ctx context.Context) *services.Dispatcher {
	if s.dispatcher == nil {
		s.dispatcher = services.NewDispatcher(
			s.UserService(ctx),
			s.TransactionService(ctx),
			s.DebtService(ctx),
			s.GoalService(ctx),
			s.Logger(),
		)
	}
	return s.dispatcher
}

func (s *ServiceProvider) HealthService(ctx context.Context) *services.HealthService {
	if s.healthService == nil {
		s.healthService = services.NewHealthService(s.TransactionRepository(ctx), s.DebtRepository(ctx), s.Logger())
	}
	return s.healthService
}

func (s *ServiceProvider) ForecastService(ctx context.Context) *services.ForecastService {
	if s.forecastService == nil {
		s.forecastService = services.NewForecastService(s.TransactionRepository(ctx), s.Logger())
	}
	return s.forecastService
}

func (s *ServiceProvider) Router(ctx context.Context) *handlers.Router {
	if s.router == nil {
		s.router = handlers.NewRouter(
			s.WhatsAppClient(),
			s.UserService(ctx),
			s.AIService(ctx),
			s.Dispatcher(ctx),
			s.ForecastService(ctx),
			s.HealthService(ctx),
			s.Logger(),
		)
	}
	return s.router
}

func (s *ServiceProvider) WebhookHandler(ctx context.Context) *handlers.WebhookHandler {
	if s.webhookHandler == nil {
		s.webhookHandler = handlers.NewWebhookHandler(
			s.WhatsAppConfig(),
			s.DedupCache(),
			s.Router(ctx),
			s.WhatsAppClient(),
			s.AIClient(),
			s.Logger(),
		)
	}
	return s.webhookHandler
}

func (s *ServiceProvider) AdminHandler(ctx context.Context) *handlers.AdminHandler {
	if s.adminHandler == nil {
		s.adminHandler = handlers.NewAdminHandler(s.UserRepository(ctx), s.TransactionRepository(ctx), s.Logger())
	}
	return s.adminHandler
}
