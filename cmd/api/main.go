package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/machinecare-leads/internal/config"
	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/database"
	"github.com/xavierca1/machinecare-leads/internal/infra/http/handlers"
	"github.com/xavierca1/machinecare-leads/internal/infra/http/middleware"
	"github.com/xavierca1/machinecare-leads/internal/infra/integration/upiqr"
	"github.com/xavierca1/machinecare-leads/internal/infra/mail"
	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
	"github.com/xavierca1/machinecare-leads/internal/usecase"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Store
	var (
		db   *sql.DB
		repo entity.LeadRepositoryInterface
	)
	if cfg.DatabaseURL != "" {
		conn, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
		}
		defer conn.Close()
		db = conn

		if cfg.RunMigrations {
			if err := database.RunMigrations(db); err != nil {
				log.Fatalf("❌ Falha nas migrations: %v", err)
			}
		}
		repo = database.NewLeadRepository(db)
	} else {
		log.Println("⚠️ DATABASE_URL vazio, usando store em memória")
		repo = database.NewMemoryLeadRepository()
	}

	// 2. Eventos (opcional)
	var (
		publisher usecase.LeadEventPublisher
		amqpConn  *amqp.Connection
	)
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()
		amqpConn = rabbitMQ.Conn

		publisher = meteredPublisher{inner: queue.NewProducer(rabbitMQ.Ch)}

		var notifier queue.Notifier
		if cfg.MailEnabled() {
			sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.AdminEmail)
			notifier = meteredNotifier{inner: sender}
		}

		worker := queue.NewWorker(rabbitMQ.Ch, notifier)
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				log.Printf("❌ Worker parou: %v", err)
			}
		}()
	} else {
		log.Println("⚠️ AMQP_URL vazio, eventos de lead desligados")
	}

	// 3. UseCases
	qr := upiqr.NewGenerator(cfg.UPIQRBaseURL)
	recordPaymentUC := usecase.NewRecordPaymentUseCase(repo, publisher)

	// 4. Handlers
	contact := handlers.NewContactHandler(usecase.NewSubmitContactFormUseCase(repo, publisher), cfg.ContactRateLimit)
	defer contact.Close()

	router := handlers.Router{
		Contact: contact,
		Leads: &handlers.LeadHandler{
			ListUseCase:           usecase.NewListLeadsUseCase(repo),
			GetUseCase:            usecase.NewGetLeadUseCase(repo),
			StatsUseCase:          usecase.NewGetLeadStatsUseCase(repo),
			UpdateStatusUseCase:   usecase.NewUpdateLeadStatusUseCase(repo, publisher),
			UpdateAmountUseCase:   usecase.NewUpdateLeadAmountUseCase(repo),
			UpdatePriorityUseCase: usecase.NewUpdateLeadPriorityUseCase(repo),
			DeleteUseCase:         usecase.NewDeleteLeadUseCase(repo, publisher),
		},
		Payments: &handlers.PaymentHandler{
			CaptureUseCase: usecase.NewCapturePaymentUseCase(repo, recordPaymentUC, qr),
			QRUseCase:      usecase.NewGenerateQRUseCase(repo, qr),
		},
		Health:         handlers.NewHealthHandler(db, amqpConn),
		AllowedOrigins: cfg.AllowedOrigins,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Machine Care leads rodando na porta %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Shutdown com erro: %v", err)
	}
}

// meteredPublisher conta falhas de publicação em integration_errors_total.
type meteredPublisher struct {
	inner usecase.LeadEventPublisher
}

func (p meteredPublisher) PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error {
	err := p.inner.PublishLeadEvent(ctx, event)
	if err != nil {
		middleware.RecordIntegrationError("rabbitmq")
	}
	return err
}

type meteredNotifier struct {
	inner queue.Notifier
}

func (n meteredNotifier) SendNewLeadAlert(event queue.LeadEvent) error {
	return n.track(n.inner.SendNewLeadAlert(event))
}

func (n meteredNotifier) SendPaymentAlert(event queue.LeadEvent) error {
	return n.track(n.inner.SendPaymentAlert(event))
}

func (n meteredNotifier) track(err error) error {
	if err != nil {
		middleware.RecordIntegrationError("smtp")
	}
	return err
}
