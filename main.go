package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/example/hanzitutor/internal/ai"
	"github.com/example/hanzitutor/internal/auth"
	"github.com/example/hanzitutor/internal/backup"
	"github.com/example/hanzitutor/internal/config"
	"github.com/example/hanzitutor/internal/database"
	"github.com/example/hanzitutor/internal/scheduler"
	"github.com/example/hanzitutor/internal/server"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Without an API key the app still serves vocabulary, flashcards and
	// backups; only sentence generation answers 501
	var gen server.SentenceGenerator
	if client, err := ai.New(cfg); err != nil {
		log.Printf("Sentence generation disabled: %v", err)
	} else {
		gen = client
	}

	authStore := auth.NewStore(cfg.AdminPassword)
	backups := backup.NewManager(db, cfg.BackupDir)

	srv := server.New(db, gen, authStore, backups)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.CreateHandler(),
	}

	sched := scheduler.New(backups, cfg.BackupIntervalHours)
	sched.Start()
	defer sched.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("Listening on %s. Press Ctrl+C to stop.", cfg.HTTPAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	log.Println("Server stopped successfully")
}
