package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/savezra/whatsapp-bot/internal/closer"
	"github.com/savezra/whatsapp-bot/internal/config"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config-path", ".env", "path to config file")
}

type App struct {
	serviceProvider *ServiceProvider
	httpServer      *http.Server
}

func NewApp(ctx context.Context) (*App, error) {
	a := &App{}

	err := a.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	defer closer.CloseAll()

	log := a.serviceProvider.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.initHTTPServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) initConfig(context.Context) error {
	err := config.Load(configPath)
	if err != nil {
		return err
	}
	return nil
}

func (a *App) initServiceProvider(context.Context) error {
	a.serviceProvider = NewServiceProvider()
	return nil
}

func (a *App) initHTTPServer(ctx context.Context) error {
	sp := a.serviceProvider

	webhook := sp.WebhookHandler(ctx)
	admin := sp.AdminHandler(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /webhook", webhook.Verify)
	mux.HandleFunc("POST /webhook", webhook.HandleIncoming)
	mux.HandleFunc("GET /admin/stats", admin.Stats)
	mux.HandleFunc("GET /admin/users", admin.Users)
	mux.HandleFunc("GET /health", healthz)

	a.httpServer = &http.Server{
		Addr:              ":" + sp.ServerConfig().Port(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"service":   "savezra",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
