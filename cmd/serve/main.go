package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anrid/world-fertility/pkg/config"
	"github.com/anrid/world-fertility/pkg/logging"
	"github.com/anrid/world-fertility/pkg/stats"
	"github.com/anrid/world-fertility/pkg/web"
)

func main() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	start := time.Now()
	src := stats.NewSource(cfg.Data)
	if err := src.Fetch(cfg.FetchTimeout); err != nil {
		log.Fatalf("No dataset found: %v", err)
	}
	ds, err := stats.Load(src)
	if err != nil {
		log.Fatalf("Could not load dataset: %v", err)
	}
	logging.TimeTrack(start, "load dataset")
	ds.Info(os.Stdout)

	s, err := web.NewServer(ds, cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Infof("Listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("shutdown: %v", err)
	}
}
