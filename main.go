package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/buddyai-core/server/internal/chat"
	"github.com/buddyai-core/server/internal/chat/repo"
	"github.com/buddyai-core/server/internal/core"
	"github.com/buddyai-core/server/internal/llm"
	"github.com/buddyai-core/server/internal/server"
	"github.com/buddyai-core/server/internal/store"
	logx "github.com/buddyai-core/server/pkg/logger"
	pkgredis "github.com/buddyai-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis           pkgredis.Config
	ConversationTTL string `envconfig:"CONVERSATION_TTL" default:"24h"`

	// Domain
	LLM    llm.Config
	Chat   chat.Config
	Server server.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise redis client")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.ConversationTTL)
	if err != nil {
		logx.Fatal().Err(err).Str("value", cfg.ConversationTTL).Msg("invalid CONVERSATION_TTL")
	}

	// a missing credential degrades chat to the connectivity reply instead of
	// refusing to boot, the CRUD surface stays usable
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logx.Warn().Err(err).Msg("chat-completion client unavailable")
		client = nil
	}

	products := store.NewProductStore(rdb)
	orders := store.NewOrderStore(rdb)
	users := store.NewUserStore(rdb)
	feedback := store.NewFeedbackStore(rdb, users, orders)
	tickets := store.NewTicketStore(rdb)

	if err := products.SeedCatalog(ctx); err != nil {
		logx.Fatal().Err(err).Msg("failed to seed product catalog")
	}

	conversations := repo.NewRedisRepository(rdb, ttl)
	chatSvc := chat.NewService(cfg.Chat, client, cfg.LLM.Retry, conversations, products)

	srv := server.New(cfg.Server, env, chatSvc, products, orders, feedback, tickets, users)
	if err := srv.Run(ctx); err != nil {
		logx.Fatal().Err(err).Msg("http server failed")
	}
	logx.Info().Msg("server stopped")
}
