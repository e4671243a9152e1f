package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/config"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planfile"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
	"github.com/Aur71/Workout-Tracker-sub000/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	planPath := flag.String("plan", "", "YAML plan file (program_id, cycles, method, config)")
	programID := flag.Int64("program", 0, "program ID (overrides the plan file)")
	cycles := flag.Int("cycles", 0, "number of cycles (overrides the plan file)")
	method := flag.String("method", "", "apply one overload method to every session")
	initPlan := flag.Bool("init", false, "print the program's default plan file and exit")
	commit := flag.Bool("commit", false, "write the previewed cycles to the database")
	verbose := flag.Bool("v", false, "log planner activity to stderr")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("mesoplan-plan", Version)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var plan planfile.File
	if *planPath != "" {
		f, err := planfile.Load(*planPath)
		if err != nil {
			log.Error("failed to load plan file", "error", err)
			os.Exit(1)
		}
		plan = *f
	}
	if *programID != 0 {
		plan.ProgramID = *programID
	}
	if *cycles != 0 {
		plan.Cycles = *cycles
	}
	if *method != "" {
		plan.Method = *method
	}

	if plan.ProgramID == 0 {
		fmt.Fprintf(os.Stderr, "Usage: mesoplan-plan -config config.yaml (-plan plan.yaml | -program ID) [-cycles N] [-method M] [-init] [-commit]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	p := planner.New(store, log, planner.WithDefaults(cfg.Progression.PlannerDefaults()))
	svc := api.NewService(p, cfg.Progression.MaxCycles, cfg.Progression.MaxSets)

	if err := run(ctx, svc, plan, *initPlan, *commit); err != nil {
		log.Error("mesoplan-plan failed", "program_id", plan.ProgramID, "error", err)
		closeStore()
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *api.Service, plan planfile.File, initPlan, commit bool) error {
	if initPlan {
		resp, err := svc.Plan(ctx, plan.ProgramID)
		if err != nil {
			return err
		}
		if plan.Cycles == 0 {
			plan.Cycles = 4
		}
		plan.Config = &resp.Config
		return planfile.Write(os.Stdout, plan)
	}

	preview, err := svc.Preview(ctx, plan.ProgramID, plan.Request())
	if err != nil {
		return err
	}
	if err := planfile.PrintPreview(os.Stdout, preview.Preview); err != nil {
		return err
	}
	if !commit {
		return nil
	}

	// Commit exactly the config that was previewed.
	req := plan.Request()
	req.Config = &preview.Config
	req.Method = ""
	result, err := svc.Generate(ctx, plan.ProgramID, req)
	if errors.Is(err, storage.ErrProgramNotFound) {
		return fmt.Errorf("program %d does not exist", plan.ProgramID)
	}
	if err != nil {
		return err
	}
	fmt.Println()
	return planfile.PrintResult(os.Stdout, result)
}
