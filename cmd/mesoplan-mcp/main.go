package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/config"
	"github.com/Aur71/Workout-Tracker-sub000/internal/mcp"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
	"github.com/Aur71/Workout-Tracker-sub000/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode)")
	serverURL := flag.String("server", "", "mesoplan server URL (remote mode, e.g. http://mesoplan.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("MESOPLAN_AUTH_API_KEY"), "API key for generate_progression in remote mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("mesoplan-mcp", Version)
		return
	}

	// stdout carries the protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("mcp remote mode", "server", *serverURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		store, closeStore, err := storage.Open(context.Background(), cfg.Database)
		if err != nil {
			log.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
			os.Exit(1)
		}
		defer closeStore()

		p := planner.New(store, log, planner.WithDefaults(cfg.Progression.PlannerDefaults()))
		ds = api.NewService(p, cfg.Progression.MaxCycles, cfg.Progression.MaxSets)
		log.Info("mcp local mode", "driver", cfg.Database.Driver)
	default:
		fmt.Fprintf(os.Stderr, "Usage: mesoplan-mcp (-config config.yaml | -server URL [-api-key KEY])\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := server.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
	}
}
