package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"brainmode-be/internal/bootstrap"
	"brainmode-be/internal/config"
	"brainmode-be/internal/server"
	"brainmode-be/internal/tracer"
)

func main() {
	// 1. Load Configuration (.env first, so every section sees it)
	cfg := config.Load()

	// 2. Tracing (env-gated)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer func() { _ = shutdownTracer(context.Background()) }()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Close()

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}
	go container.StreamHub.Run(ctx)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
