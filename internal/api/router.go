package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"taxi-faq/docs"
	"taxi-faq/internal/api/handlers"
	"taxi-faq/pkg/config"
	"taxi-faq/pkg/middleware"
)

// SetupRouter builds the HTTP application. gatherer may be nil, in which case
// no metrics endpoint is exposed.
func SetupRouter(
	faqHandler *handlers.FAQHandler,
	healthHandler *handlers.HealthHandler,
	gatherer prometheus.Gatherer,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "taxi-faq",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// Swagger - importing docs registers the spec through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", healthHandler.Health)

	if gatherer != nil && cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
		appLogger.Info("Metrics endpoint enabled", zap.String("path", cfg.Metrics.Path))
	}

	api := app.Group("/api/v1")
	api.Post("/match", faqHandler.Match)
	api.Get("/match", faqHandler.MatchQuery)
	api.Post("/classify", faqHandler.Classify)
	api.Get("/categories", faqHandler.Categories)
	api.Get("/entries", faqHandler.ListEntries)
	api.Get("/entries/:id", faqHandler.GetEntry)
	api.Get("/unmatched", faqHandler.ListUnmatched)

	return app
}
