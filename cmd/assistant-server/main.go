// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"banking-assistant/internal/admin/session"
	"banking-assistant/internal/admin/unanswered"
	"banking-assistant/internal/assistant/catalog"
	"banking-assistant/internal/assistant/escalation"
	"banking-assistant/internal/assistant/intent"
	"banking-assistant/internal/assistant/localize"
	"banking-assistant/internal/assistant/orchestrator"
	"banking-assistant/internal/assistant/retrieval"
	"banking-assistant/internal/assistant/speech"
	"banking-assistant/internal/common/aws"
	"banking-assistant/internal/common/config"
	"banking-assistant/internal/common/database"
	"banking-assistant/internal/common/genai"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/observability"
	"banking-assistant/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting banking assistant server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Stores ---
	questionStore := unanswered.NewStore(pg.GetDB(), log)
	sessionStore := session.NewStore(pg.GetDB(), log)
	if err := questionStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("unanswered schema init failed", zap.Error(err))
	}
	if err := sessionStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("session schema init failed", zap.Error(err))
	}

	history := orchestrator.NewRedisHistoryStore(redis.GetClient(),
		config.GetDuration(cfg.Database.Redis.HistoryTTL))

	// --- GenAI client (classification, localization, RAG) ---
	genaiClient := genai.NewClient(&genai.Config{
		BaseURL:          cfg.GenAI.BaseURL,
		APIKey:           cfg.GenAI.APIKey,
		GenerateTimeout:  config.GetDuration(cfg.GenAI.GenerateTimeout),
		EmbeddingTimeout: config.GetDuration(cfg.GenAI.EmbeddingTimeout),
		MaxRetries:       cfg.GenAI.MaxRetries,
	})

	// --- Canned catalog, validated before serving ---
	cat := catalog.New()
	if err := cat.Validate(); err != nil {
		zapLog.Fatal("catalog validation failed", zap.Error(err))
	}

	// --- Retrieval answerer (loan eligibility) ---
	// Ingestion failure is survivable: loan questions fall back to the
	// canned script until the document can be indexed.
	var answerer orchestrator.DocumentAnswerer
	esIndex := retrieval.NewElasticsearchIndex(esClient.Client, cfg.Retrieval.IndexName,
		config.GetDuration(cfg.Retrieval.QueryTimeout), log)
	if cfg.Retrieval.DocumentPath != "" {
		ingestor := retrieval.NewIngestor(genaiClient, esIndex, log)
		documentID, err := ingestor.Ingest(ctx, cfg.Retrieval.DocumentPath)
		if err != nil {
			zapLog.Warn("document ingestion failed, loan eligibility will use the canned script",
				zap.Error(err))
		} else {
			answerer = retrieval.NewAnswerer(genaiClient, genaiClient, esIndex,
				documentID, cfg.Retrieval.TopK, log)
			zapLog.Info("retrieval answerer ready", zap.String("documentId", documentID))
		}
	}

	// --- Escalation gate ---
	var sink escalation.QuestionSink = questionStore
	if cfg.Escalation.SinkURL != "" {
		sink = escalation.NewHTTPSink(cfg.Escalation.SinkURL,
			config.GetDuration(cfg.Escalation.SinkTimeout))
	}
	var lookup escalation.PhoneLookup = sessionStore
	if cfg.Escalation.SessionLookupURL != "" {
		lookup = escalation.NewHTTPLookup(cfg.Escalation.SessionLookupURL,
			config.GetDuration(cfg.Escalation.LookupTimeout))
	}
	gate := escalation.NewGate(sink, lookup, escalation.Policy{
		EscalateGeneralInquiry: cfg.Escalation.EscalateGeneralInquiry,
	}, log)

	// --- Pipeline ---
	pipeline := orchestrator.New(
		intent.NewClassifier(genaiClient, log),
		catalog.NewResponder(cat, genaiClient, log),
		answerer,
		gate,
		localize.NewLocalizer(genaiClient, log),
		history,
		log,
	)

	// --- Notifications ---
	var notifier *unanswered.Notifier
	if cfg.Notifications.SMS.Enabled || cfg.Notifications.Email.Enabled {
		var snsClient *aws.SNSClient
		var sesClient *aws.SESClient
		if cfg.Notifications.SMS.Enabled {
			snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Warn("SNS client init failed, SMS notifications disabled", zap.Error(err))
			}
		}
		if cfg.Notifications.Email.Enabled {
			sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Warn("SES client init failed, email notifications disabled", zap.Error(err))
			}
		}
		notifier = unanswered.NewNotifier(snsClient, sesClient,
			cfg.Notifications.Email.FromEmail, cfg.Notifications.Email.AdminEmail, log)
	}

	// --- Speech boundary ---
	var speechClient *speech.Client
	if cfg.Speech.BaseURL != "" {
		speechClient = speech.NewClient(cfg.Speech.BaseURL,
			config.GetDuration(cfg.Speech.Timeout), log)
	}

	srv := server.New(cfg.Server.Address, server.Deps{
		Orchestrator:  pipeline,
		History:       history,
		Speech:        speechClient,
		Questions:     questionStore,
		Notifier:      notifier,
		Sessions:      sessionStore,
		Observability: obs,
		Logger:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zapLog.Fatal("http server failed", zap.Error(err))
	case sig := <-stop:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
