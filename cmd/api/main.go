package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/saint-brief/internal/config"
	"github.com/xavierca1/saint-brief/internal/infra/database"
	"github.com/xavierca1/saint-brief/internal/infra/draftstore"
	"github.com/xavierca1/saint-brief/internal/infra/http/handlers"
	"github.com/xavierca1/saint-brief/internal/infra/http/middleware"
	"github.com/xavierca1/saint-brief/internal/infra/integration/sheets"
	"github.com/xavierca1/saint-brief/internal/infra/mail"
	"github.com/xavierca1/saint-brief/internal/infra/queue"
	"github.com/xavierca1/saint-brief/internal/infra/worker"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
	"github.com/xavierca1/saint-brief/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	// 1. Banco (opcional: rascunhos em postgres e arquivo de envios)
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ falha ao conectar no banco", "error", err)
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.Fatal("❌ falha ao criar schema", "error", err)
		}
	}

	// 2. Store de rascunhos
	store, closeStore, err := newDraftStore(ctx, cfg, db)
	if err != nil {
		log.Fatal("❌ falha ao abrir store de rascunhos", "store", cfg.Draft.Store, "error", err)
	}
	defer closeStore()
	log.Info("🗂️ store de rascunhos pronto", "store", cfg.Draft.Store)

	autosaver := usecase.NewDraftAutosaver(store, cfg.Draft.Debounce, log)
	autosaver.OnWrite = middleware.RecordDraftWrite
	drafts := usecase.NewDraftRepository(store, autosaver, log)

	if purger, ok := store.(usecase.DraftPurger); ok {
		go worker.NewDraftExpirationWorker(purger, cfg.Draft.TTL, log).Start(ctx)
	}

	// 3. Integrações (interfaces ficam nil quando não configuradas)
	var sheet interface {
		usecase.TabularStore
		usecase.SheetInitializer
	}
	if cfg.SheetsEnabled() {
		client, err := sheets.NewClient(ctx, cfg.Sheets)
		if err != nil {
			log.Fatal("❌ falha ao criar cliente do Google Sheets", "error", err)
		}
		sheet = client
	} else {
		log.Warn("⚠️ Google Sheets não configurado")
	}

	var notifier usecase.Notifier
	if cfg.MailEnabled() {
		notifier = mail.NewEmailSender(cfg.Mail, loc)
	} else {
		log.Warn("⚠️ email não configurado")
	}

	var producer usecase.QueueProducerInterface
	var rabbitState handlers.ConnectionState
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal("❌ falha ao conectar no RabbitMQ", "error", err)
		}
		defer rabbitMQ.Close()
		producer = queue.NewProducer(rabbitMQ.Ch)
		rabbitState = rabbitMQ.Conn

		// o worker só arquiva quando há banco
		if db != nil {
			w := queue.NewWorker(rabbitMQ.Ch, database.NewSubmissionRepository(db), log)
			go func() {
				if err := w.Start(ctx, queue.QueueName); err != nil {
					log.Error("❌ worker de envios parou", "error", err)
				}
			}()
		}
	}

	// 4. UseCases
	var sheetInit usecase.SheetInitializer
	var tabular usecase.TabularStore
	if sheet != nil {
		sheetInit = sheet
		tabular = sheet
	}

	brief := &handlers.BriefHandler{
		StartUC:     usecase.NewStartBriefUseCase(drafts, log),
		GetUC:       usecase.NewGetBriefUseCase(drafts),
		ApplyStepUC: usecase.NewApplyStepUseCase(drafts, log),
		ClearUC:     usecase.NewClearDraftUseCase(drafts, log),
		PreviewUC:   usecase.NewPreviewBriefUseCase(drafts, loc),
		SubmitUC:    usecase.NewSubmitBriefUseCase(drafts, tabular, notifier, producer, loc, cfg.Draft.ClearOnSubmit, log),
		InitSheetUC: usecase.NewInitSheetUseCase(sheetInit, log),
		Log:         log,
	}

	var dbPinger handlers.Pinger
	if db != nil {
		dbPinger = db
	}

	limiter := middleware.NewRateLimiter(cfg.SubmitRatePerMinute)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go limiter.Cleanup(stopCleanup)

	// 5. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Brief:          brief,
		Health:         handlers.NewHealthHandler(dbPinger, rabbitState, cfg.Draft.Store, cfg.SheetsEnabled(), cfg.MailEnabled()),
		SubmitLimiter:  limiter,
		RequestLog:     true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// o envio espera Sheets e SMTP
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("🔥 Server Saint Brief rodando", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ servidor caiu", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ erro no shutdown do servidor", "error", err)
	}
	// grava os rascunhos pendentes antes de fechar o store
	if err := autosaver.Close(shutdownCtx); err != nil {
		log.Error("❌ rascunhos pendentes não gravados", "error", err)
	}
}

func newDraftStore(ctx context.Context, cfg *config.Config, db *sql.DB) (usecase.DraftStore, func(), error) {
	noop := func() {}

	switch cfg.Draft.Store {
	case config.DraftStoreSQLite:
		s, err := draftstore.NewSQLiteStore(cfg.Draft.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.DraftStorePostgres:
		return database.NewDraftRepository(db), noop, nil

	case config.DraftStoreRedis:
		client, err := draftstore.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		return draftstore.NewRedisStore(client, cfg.Draft.TTL), func() { _ = client.Close() }, nil

	default:
		return draftstore.NewMemoryStore(), noop, nil
	}
}
