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
	"go.uber.org/zap"

	"prisonsphere_backend/internals/configs"
	database "prisonsphere_backend/internals/databases"
	recentScheduler "prisonsphere_backend/internals/features/home/recent_activities/scheduler"
	workScheduler "prisonsphere_backend/internals/features/programs/work_programs/scheduler"
	authScheduler "prisonsphere_backend/internals/features/users/auth/scheduler"
	"prisonsphere_backend/internals/helpers/cache"
	"prisonsphere_backend/internals/helpers/jobs"
	helperOSS "prisonsphere_backend/internals/helpers/oss"
	middlewares "prisonsphere_backend/internals/middlewares"
	routes "prisonsphere_backend/internals/route"
	"prisonsphere_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	defer func() { _ = zap.L().Sync() }()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             configs.GetEnvInt("BODY_LIMIT_MB", 8) * 1024 * 1024,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	if configs.AutoMigrate {
		if err := database.Migrate(database.DB); err != nil {
			zap.L().Fatal("auto migrate failed", zap.Error(err))
		}
		if configs.GetEnvBool("SEED_ON_START", false) {
			if err := seeds.RunAllSeeds(database.DB, configs.GetEnv("SEED_USERS_FILE")); err != nil {
				zap.L().Error("seeding failed", zap.Error(err))
			}
		}
	}
	database.WarmUpQueries()

	deps := routes.Deps{DB: database.DB}

	if store, err := helperOSS.NewOSSServiceFromEnv("inmates"); err != nil {
		zap.L().Warn("object storage disabled, inmate photos will not be uploaded", zap.Error(err))
	} else {
		deps.Store = store
	}

	redisKV := cache.NewFromEnv(context.Background())
	if redisKV != nil {
		deps.Cache = redisKV
	}

	cr := jobs.New()
	if _, err := workScheduler.Register(cr, database.DB, configs.GetEnv("WORK_PROGRAM_CRON")); err != nil {
		zap.L().Fatal("register work program scheduler", zap.Error(err))
	}
	if _, err := recentScheduler.Register(cr, database.DB, configs.GetEnv("RECENT_ACTIVITY_CRON")); err != nil {
		zap.L().Fatal("register recent activity scheduler", zap.Error(err))
	}
	if _, err := authScheduler.Register(cr, database.DB, configs.GetEnv("TOKEN_CLEANUP_CRON")); err != nil {
		zap.L().Fatal("register token cleanup scheduler", zap.Error(err))
	}
	cr.Start()

	routes.SetupRoutes(app, deps)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "5000")

	go func() {
		zap.L().Info("listening", zap.String("port", port), zap.String("env", configs.AppEnv))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zap.L().Warn("http shutdown", zap.Error(err))
	}
	jobs.Stop(ctx, cr)
	if redisKV != nil {
		_ = redisKV.Close()
	}
	database.Close()
}
