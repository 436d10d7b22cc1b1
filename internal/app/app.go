package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"portagees/backend/internal/api"
	"portagees/backend/internal/config"
	"portagees/backend/internal/database"
	"portagees/backend/internal/llm"
	"portagees/backend/internal/repository"
	"portagees/backend/internal/service"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	store, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize conversation store", "backend", cfg.StoreBackend, "error", err)
		return 1
	}
	defer cleanup()

	provider := llm.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	bank := service.NewQuestionBank()

	chatService := service.NewChatService(store, provider, bank, cfg.DefaultUserID, cfg.DefaultTopic)
	conversationService := service.NewConversationService(store, cfg.DefaultUserID)

	chatHandler := api.NewChatHandler(chatService)
	conversationHandler := api.NewConversationHandler(conversationService)
	router := api.NewRouter(chatHandler, conversationHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // The pipeline timeout is enforced per route group.
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

// openStore builds the conversation store selected by STORE_BACKEND and
// returns a cleanup function for its underlying connection.
func openStore(cfg *config.Config) (repository.ConversationStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		db, disconnect, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			_ = disconnect(context.Background())
			return nil, nil, err
		}
		slog.Info("Successfully connected to MongoDB.", "database", cfg.MongoDatabase)

		cleanup := func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := disconnect(shutdownCtx); err != nil {
				slog.Error("Failed to disconnect from MongoDB", "error", err)
			}
		}
		return repository.NewMongoStore(db), cleanup, nil

	case config.StoreSQLite:
		db, err := database.InitSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

		cleanup := func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}
		return repository.NewSQLiteStore(db), cleanup, nil

	case config.StoreMemory:
		slog.Warn("Using in-memory conversation store; data is lost on restart.")
		return repository.NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
