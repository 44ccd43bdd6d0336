package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ima-jin/imajin-chat/config"
	chatRepository "github.com/ima-jin/imajin-chat/internal/chat/repository"
	chatUsecase "github.com/ima-jin/imajin-chat/internal/chat/usecase"
	"github.com/ima-jin/imajin-chat/internal/events"
	"github.com/ima-jin/imajin-chat/internal/identity"
	inviteRepository "github.com/ima-jin/imajin-chat/internal/invite/repository"
	inviteUsecase "github.com/ima-jin/imajin-chat/internal/invite/usecase"
	keyRepository "github.com/ima-jin/imajin-chat/internal/keys/repository"
	keyUsecase "github.com/ima-jin/imajin-chat/internal/keys/usecase"
	"github.com/ima-jin/imajin-chat/internal/server"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

var configFile = flag.String("config", "config", "config file name (without extension)")

func main() {
	flag.Parse()

	v, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	dsn := cfg.Bun.DSN
	if fromEnv := os.Getenv("DATABASE_URL"); fromEnv != "" {
		dsn = fromEnv
	}
	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("error closing db", "err", err)
		}
	}()

	if err := db.PingContext(context.Background()); err != nil {
		appLogger.Warn("database unreachable at startup", "err", err)
	} else {
		appLogger.Info("connected to database")
	}

	var verifier identity.Verifier
	switch cfg.Verifier.Mode {
	case "remote":
		verifier = identity.NewRemoteVerifier(cfg, *appLogger)
	default:
		verifier = identity.NewJWTVerifier(cfg)
	}

	var publisher events.Publisher = events.Noop{}

	chatRepo := chatRepository.NewChatRepository(db, *appLogger)
	inviteRepo := inviteRepository.NewInviteRepository(db, *appLogger)
	keyRepo := keyRepository.NewKeyRepository(db, *appLogger)

	conversations := chatUsecase.NewConversationUsecase(chatRepo, publisher, *appLogger, cfg)
	participants := chatUsecase.NewParticipantUsecase(chatRepo, publisher, *appLogger)
	messages := chatUsecase.NewMessageUsecase(chatRepo, publisher, *appLogger)
	invites := inviteUsecase.NewInviteUsecase(inviteRepo, chatRepo, publisher, *appLogger, cfg)
	keyDirectory := keyUsecase.NewKeyUsecase(keyRepo, *appLogger, cfg)

	srv := server.NewServer(cfg, *appLogger, verifier, conversations, participants, messages, invites, keyDirectory)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	appLogger.Info("server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
	if err := httpServer.ListenAndServe(); err != nil {
		appLogger.Fatalf("ListenAndServe: %v", err)
	}
}
