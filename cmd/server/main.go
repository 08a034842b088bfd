package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/database"
	"github.com/example/mlmadmin/internal/handlers"
	"github.com/example/mlmadmin/internal/jobs"
	"github.com/example/mlmadmin/internal/routes"
	"github.com/example/mlmadmin/internal/store"
)

func main() {
	cfg := config.Load()

	var st store.Store
	if database.IsMemory(cfg.DatabaseURL) {
		log.Println("[Database] using in-memory store")
		st = store.NewMemory()
	} else {
		st = store.NewGorm(database.Connect(cfg.DatabaseURL, cfg.DebugMode))
	}

	app := fiber.New(fiber.Config{
		AppName:      "MLM Admin Console",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    int(cfg.UploadMaxFileSize)*cfg.UploadMaxFiles + 1<<20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowCredentials: true,
		}))
	}

	routes.Register(app, st, cfg)

	scheduler, err := jobs.NewHousekeeping(st, cfg.NotificationRetention).Start()
	if err != nil {
		log.Fatalf("[Jobs] %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		scheduler.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("fiber.Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
