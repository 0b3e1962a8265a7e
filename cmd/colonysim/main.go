package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/lucas/colonysim/internal/api"
	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/jobwork"
	"github.com/lucas/colonysim/internal/config"
	"github.com/lucas/colonysim/internal/persist"
	"github.com/lucas/colonysim/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	devMode := flag.Bool("dev", false, "enable development mode (dev routes)")
	noDB := flag.Bool("no-db", false, "run without a database (in-memory only)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "world generation seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("failed to load config from %s, using defaults: %v", *configPath, err)
		cfg = config.Default()
	}

	if *devMode {
		cfg.Dev.Enabled = true
		log.Println("development mode enabled")
	}

	var pg *persist.Postgres
	var rd *persist.Redis

	if *noDB || cfg.Dev.InMemory {
		log.Println("running without a database (in-memory mode)")
	} else {
		pg, err = persist.NewPostgres(cfg.Database.PostgresURL)
		if err != nil {
			log.Printf("warning: failed to connect to PostgreSQL: %v", err)
		} else if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Printf("warning: failed to ensure schema: %v", err)
		}

		rd, err = persist.NewRedis(cfg.Database.RedisURL)
		if err != nil {
			log.Printf("warning: failed to connect to Redis: %v", err)
		}
	}
	defer pg.Close()
	defer rd.Close()

	hub := ws.NewHub()
	go hub.Run()

	registry := colony.NewJobWorkerRegistry()
	jobwork.RegisterAllJobWorkers(registry)

	engine := colony.NewEngine(cfg, registry, hub)
	engine.Colony().GenerateGroundLevel(*seed)

	colonyID := uuid.New()
	if pg != nil && pg.IsConnected() {
		if snap, ok, err := pg.LoadSnapshot(context.Background(), colonyID); err != nil {
			log.Printf("warning: failed to load saved snapshot: %v", err)
		} else if ok {
			log.Printf("found a saved snapshot for colony %s at tick %d (restoring live state is not yet wired up)", colonyID, snap.Tick)
		}
	}

	if cfg.Dev.PauseTick {
		engine.Pause()
		log.Println("pause-tick enabled: colony starts paused (use /api/dev/tick or /api/dev/resume)")
	}

	persistCtx, cancelPersist := context.WithCancel(context.Background())
	defer cancelPersist()
	if pg != nil && pg.IsConnected() {
		go periodicallyPersist(persistCtx, engine, pg, rd, colonyID)
	}

	router := api.NewRouter(engine, hub, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stopEngine := context.WithCancel(context.Background())
	engine.Start(runCtx)

	go func() {
		log.Printf("colony %s listening on %s:%d", colonyID, cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	stopEngine()
	engine.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// periodicallyPersist snapshots the colony to Postgres and publishes a
// warm copy to Redis every few seconds, the colony-sim analogue of the
// teacher's per-tick Redis fan-out, but decoupled from tick cadence so a
// fast sim doesn't hammer the database on every 250ms tick.
func periodicallyPersist(ctx context.Context, engine *colony.Engine, pg *persist.Postgres, rd *persist.Redis, colonyID uuid.UUID) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := engine.Snapshot()
			if err := pg.SaveSnapshot(ctx, colonyID, snap); err != nil {
				log.Printf("warning: failed to persist snapshot: %v", err)
			}
			if rd != nil && rd.IsConnected() {
				if err := rd.CacheSnapshot(ctx, colonyID, snap); err != nil {
					log.Printf("warning: failed to cache snapshot: %v", err)
				}
			}
		}
	}
}
