package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/database"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/search"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/typesense"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	turfRepo := database.NewTurfAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting turfs collection before reindex")
		_, err := tsClient.Client().Collection(typesense.TurfsCollection).Delete(ctx)
		if err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	turfs, err := turfRepo.List(ctx, repositories.TurfFilter{Limit: 1000})
	if err != nil {
		return err
	}

	log.Printf("Indexing %d turfs...", len(turfs))

	for _, turf := range turfs {
		if turf == nil {
			continue
		}

		if err := adapter.Index(ctx, turf); err != nil {
			log.Printf("Failed to index turf %s: %v", turf.ID, err)
		} else {
			log.Printf("Indexed %s", turf.Name)
		}
	}

	log.Println("Indexing complete.")
	return nil
}
