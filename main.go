package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinema_factory/config"
	"cinema_factory/database"
	"cinema_factory/events"
	"cinema_factory/handler"
	"cinema_factory/helper"
	"cinema_factory/payphi"
	"cinema_factory/router"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store, err := helper.InitCloudinary(cfg.Cloudinary)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}

	var (
		rdb       *redis.Client
		txnNo     payphi.TxnNoGenerator = payphi.UUIDTxnNo{}
		publisher events.Multi
	)
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		txnNo = payphi.NewRedisSequence(rdb)
		publisher = append(publisher, events.NewRedisPublisher(rdb))
	}
	kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka)
	if kafkaPublisher != nil {
		publisher = append(publisher, kafkaPublisher)
		defer kafkaPublisher.Close()
	}

	mailer := utils.NewMailer(utils.MailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	ledger := database.NewTransactionRepository(db)
	callbackEvents := database.NewEventRepository(db)

	auth, err := handler.NewAuthHandler(cfg.Auth)
	if err != nil {
		log.Fatalf("admin credentials: %v", err)
	}
	handlers := router.Handlers{
		Payment: &handler.PaymentHandler{
			Builder:    payphi.NewBuilder(cfg.PayPhi, txnNo),
			Gateway:    payphi.NewGateway(cfg.PayPhi),
			Reconciler: payphi.NewReconciler(cfg.PayPhi),
			Ledger:     ledger,
			Events:     publisher,
			Mailer:     mailer,
			NotifyTo:   cfg.SMTP.NotifyTo,
		},
		Transactions: &handler.TransactionHandler{Ledger: ledger},
		Assets: &handler.AssetHandler{
			Assets: database.NewAssetRepository(db),
			Store:  store,
		},
		Faqs:      &handler.FaqHandler{Faqs: database.NewFaqRepository(db)},
		Auth:      auth,
		JWTSecret: cfg.Auth.JWTSecret,
	}
	if rdb != nil {
		handlers.Socket = &handler.PaymentSocket{Redis: rdb, Ledger: ledger}
	}

	scheduler, err := helper.StartScheduler(cfg.Jobs, &helper.Jobs{
		Ledger:        ledger,
		Events:        callbackEvents,
		Mailer:        mailer,
		NotifyTo:      cfg.SMTP.NotifyTo,
		RetentionDays: cfg.Jobs.EventRetentionDays,
	})
	if err != nil {
		log.Fatalf("start schedulers: %v", err)
	}
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit:    60 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie, X-Total-Count, Content-Disposition",
		MaxAge:           600,
	}))

	router.SetupRoutes(app, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorw("shutdown", "error", err)
		}
	}()

	log.Infow("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorw("server stopped", "error", err)
	}
	if rdb != nil {
		rdb.Close()
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Errorw("unhandled error", "path", c.Path(), "error", err)
	}
	return utils.ErrorResponse(c, code, message, err)
}
