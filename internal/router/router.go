package router

import (
	"wallet-import/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, tasks *asynq.Client, cfg *config.Config, logger *logrus.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	api := app.Group("/api/v1")
	SetupAPIRoutes(api, db, redis, tasks, cfg, logger)
}
