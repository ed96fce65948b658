package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"sarpras_backend/internals/configs"
	database "sarpras_backend/internals/databases"
	authService "sarpras_backend/internals/features/users/auth/service"
	scheduler "sarpras_backend/internals/features/users/auth/scheduler"
	helper "sarpras_backend/internals/helpers"
	middlewares "sarpras_backend/internals/middlewares"
	routes "sarpras_backend/internals/route"
	"sarpras_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	configs.InitLogger(configs.LogLevel, configs.LogFormat)
	log := configs.Logger()

	// `go run . seed` → jalankan seeder lalu keluar
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		seeds.RunAllSeeds(configs.InitSeederDB())
		return
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               12 * 1024 * 1024, // lampiran maks 10MB + overhead multipart
		ErrorHandler:            helper.FromFiberError,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Debug().
			Str("id", id).
			Str("method", c.Method()).
			Str("url", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("dur", time.Since(start)).
			Msg("[REQ]")
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + migrate + pool + warm-up
	database.ConnectDB()
	if configs.GetEnv("DB_AUTO_MIGRATE", "true") == "true" {
		if err := database.AutoMigrate(); err != nil {
			log.Fatal().Err(err).Msg("❌ AutoMigrate gagal")
		}
	}
	database.TunePool()
	database.WarmUpQueries()

	authSvc := authService.NewAuthService(database.DB, configs.JWTSecret, configs.AccessTokenTTL)

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(authSvc)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Scheduler gagal dijalankan")
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, authSvc)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Info().Str("port", port).Msg("✅ Listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + stop cron + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-cleanup.Stop().Done()

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
