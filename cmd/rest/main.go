package main

import (
	"context"
	"log"

	"github.com/Nix128/asisten-pengawasan-apip/internal/bootstrap"
	"github.com/Nix128/asisten-pengawasan-apip/internal/config"
	"github.com/Nix128/asisten-pengawasan-apip/internal/server"
	"github.com/Nix128/asisten-pengawasan-apip/internal/tracer"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/database"
)

func main() {
	// 0. Tracer (aktif hanya kalau OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Konfigurasi
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Background indexer
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
