package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/config"
	"github.com/ksen61/kursovaya4petshop2/internal/handlers"
	"github.com/ksen61/kursovaya4petshop2/internal/messaging"
	"github.com/ksen61/kursovaya4petshop2/internal/repository"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "shop-service").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	db, err := repository.Open(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := repository.RunMigrations(db, &cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	log.Info().Str("db", cfg.Database.DBName).Msg("database ready")

	rabbitClient := messaging.NewClient(messaging.NewRabbitMQConfig(), log)
	if err := rabbitClient.Connect(); err != nil {
		log.Fatal().Err(err).Msg("rabbitmq connection failed")
	}
	defer rabbitClient.Close()

	publisher := messaging.NewPublisher(rabbitClient, log)

	// Repositories
	checkoutStore := repository.NewCheckoutStore(db)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	pickupPointRepo := repository.NewPickupPointRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	notifier := service.NewEventNotifier(publisher)
	checkoutService := service.NewCheckoutService(checkoutStore, notifier, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	orderService := service.NewOrderService(orderRepo, auditRepo, log)
	reviewService := service.NewReviewService(reviewRepo, productRepo, log)
	stockService := service.NewStockService(stockRepo, productRepo, auditRepo, log)

	// Handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	stockHandler := handlers.NewStockHandler(stockService)
	pickupPointHandler := handlers.NewPickupPointHandler(pickupPointRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitClient)

	app := setupFiberApp(log)
	setupRoutes(app, checkoutHandler, cartHandler, orderHandler, reviewHandler,
		stockHandler, pickupPointHandler, healthHandler)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shop service shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().Str("port", cfg.HTTPPort).Msg("shop service listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupFiberApp(log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Pet Shop Service v1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID,X-User-ID",
	}))

	return app
}

func setupRoutes(
	app *fiber.App,
	checkout *handlers.CheckoutHandler,
	cart *handlers.CartHandler,
	orders *handlers.OrderHandler,
	reviews *handlers.ReviewHandler,
	stocks *handlers.StockHandler,
	pickupPoints *handlers.PickupPointHandler,
	health *handlers.HealthHandler,
) {
	api := app.Group("/api/v1")

	api.Get("/health", health.HealthCheck)
	api.Get("/pickup-points", pickupPoints.ListPickupPoints)

	api.Get("/cart", cart.GetCart)
	api.Post("/cart/items", cart.AddLine)
	api.Put("/cart/items/:id", cart.UpdateLine)
	api.Delete("/cart/items/:id", cart.RemoveLine)

	api.Post("/checkout", checkout.PlaceOrder)

	api.Get("/orders", orders.ListOrders)
	api.Get("/orders/:id", orders.GetOrder)

	api.Get("/products/:id/stock", stocks.GetStock)
	api.Get("/products/:id/reviews", reviews.ListReviews)
	api.Post("/products/:id/reviews", reviews.CreateReview)

	admin := api.Group("/admin")
	admin.Put("/orders/:id/status", orders.UpdateStatus)
	admin.Post("/stocks", stocks.Restock)

	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}
