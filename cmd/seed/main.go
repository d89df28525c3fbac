// Package main provides a CLI for seeding the local development database
// with demo events so the GraphQL gateway and websocket feed have data to
// serve. Re-running it is safe; events that already exist are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcheckin/config"
	"eventcheckin/internal/domain"
	"eventcheckin/internal/repository/postgres"
)

func main() {
	var databaseURL string
	var wipe bool
	flag.StringVar(&databaseURL, "database-url", "", "Postgres connection string (default: DATABASE_URL)")
	flag.BoolVar(&wipe, "wipe", false, "empty all tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if databaseURL == "" {
		databaseURL = cfg.DBUrl
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	db, err := postgres.Open(databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if wipe {
		if err := postgres.Reset(db); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Wiped existing data.")
	}

	events := postgres.NewEventRepository(db)

	existing, err := events.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	have := make(map[string]bool, len(existing))
	for _, e := range existing {
		have[e.Name] = true
	}

	base := time.Now().Truncate(time.Hour)
	demo := []*domain.Event{
		domain.NewEvent("Backend Guild Breakfast", "Remote", base.Add(24*time.Hour)),
		domain.NewEvent("GopherCon Warmup Meetup", "Berlin", base.Add(48*time.Hour)),
		domain.NewEvent("Cloud Native Night", "Munich", base.Add(7*24*time.Hour)),
		domain.NewEvent("Release Retrospective", "Office 4F", base.Add(14*24*time.Hour)),
	}

	created := 0
	for _, event := range demo {
		if have[event.Name] {
			continue
		}
		if err := events.Create(ctx, event); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		created++
		fmt.Printf("  created %q (%s)\n", event.Name, event.StartTime.Format(time.RFC3339))
	}

	fmt.Printf("Seeded %d event(s), %d already present.\n", created, len(demo)-created)
}
