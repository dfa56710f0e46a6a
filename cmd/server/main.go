package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/mtga-ko/internal/api"
	"github.com/codyseavey/mtga-ko/internal/config"
	"github.com/codyseavey/mtga-ko/internal/services"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A missing or broken document is not fatal: the server starts with an
	// empty index and /health shows zero records.
	lookupService := services.NewLookupService(cfg.CardsDataPath, cfg.CardsDataURL)
	if err := lookupService.Load(ctx); err != nil {
		log.Printf("Failed to load card document: %v", err)
	}

	if cfg.ReloadInterval > 0 {
		reloadWorker := services.NewReloadWorker(lookupService, cfg.ReloadInterval)
		go reloadWorker.Start(ctx)
	}

	router := api.SetupRouter(cfg, lookupService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
