package api

import (
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/husky-nft/nftgate/api/docs"
	"github.com/husky-nft/nftgate/api/handler"
	"github.com/husky-nft/nftgate/api/handler/common"
	"github.com/husky-nft/nftgate/config"
)

const shutdownTimeout = 10 * time.Second

type Api struct {
	cfg    *config.Config
	logger *slog.Logger
	app    *fiber.App
}

// @title nftgate API
// @version 1.0
// @description Wallet-gated NFT collection API
// @BasePath /

// @tag.name NFT
// @tag.description Ownership, token and collection operations

// @tag.name App
// @tag.description Service health and status
func New(cfg *config.Config, logger *slog.Logger, svc common.NftService) *Api {
	app := fiber.New(fiber.Config{
		AppName:               "nftgate API",
		DisableStartupMessage: true,
		ErrorHandler:          common.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestIDMiddleware())
	app.Use(metricsMiddleware())
	addCORS(app, cfg, logger)

	app.Get("/health", health)
	handler.Register(app, svc, cfg, logger)

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
		TagsSorter: template.JS(`function(a, b) {
			const order = ["NFT", "App"];
			return order.indexOf(a) - order.indexOf(b);
		}`),
	}))

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.GetListenPort())

	return &Api{
		cfg:    cfg,
		logger: logger,
		app:    app,
	}
}

// App exposes the fiber app, mainly for app.Test.
func (a *Api) App() *fiber.App {
	return a.app
}

func (a *Api) Start() error {
	port := a.cfg.GetListenPort()
	a.logger.Info("starting API server", slog.String("addr", fmt.Sprintf("http://localhost:%s", port)))
	return a.app.Listen(":" + port)
}

func (a *Api) Shutdown() error {
	return a.app.ShutdownWithTimeout(shutdownTimeout)
}

// health handles GET /health
// @Summary Health check
// @Tags App
// @Success 200 "OK"
// @Router /health [get]
func health(c *fiber.Ctx) error {
	return c.SendString("OK")
}
