package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/profileview/internal/config"
	"github.com/jask/profileview/internal/database"
	"github.com/jask/profileview/internal/database/repository"
	"github.com/jask/profileview/internal/profile"
	"github.com/jask/profileview/internal/service"
	"github.com/jask/profileview/internal/tui"
)

func main() {
	var (
		user       = flag.String("user", "", "profile to open (defaults to the viewer)")
		viewer     = flag.String("viewer", "", "who is looking (overrides session.viewer)")
		reset      = flag.Bool("reset", false, "wipe the database and reload the demo data")
		initConfig = flag.Bool("init-config", false, "write the effective config file and exit")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *viewer != "" {
		cfg.Session.Viewer = *viewer
	}
	if *initConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		return
	}

	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
		f, err := tea.LogToFile(cfg.Log.Path, "profileview")
		if err != nil {
			log.Fatalf("log: %v", err)
		}
		defer f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	maintenance := &service.MaintenanceService{DB: db}
	if *reset {
		if err := maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
	} else if cfg.Database.Seed {
		if err := database.SeedDemo(ctx, db); err != nil {
			log.Fatalf("seed demo: %v", err)
		}
	}

	cards, err := service.NewCardCache(cfg.Cache.Size)
	if err != nil {
		log.Fatalf("card cache: %v", err)
	}
	profiles := &service.ProfileService{
		Users:      repository.NewUserRepo(db),
		Follows:    repository.NewFollowRepo(db),
		Teams:      repository.NewTeamRepo(db),
		Assertions: repository.NewAssertionRepo(db),
		Track:      repository.NewTrackRepo(db),
		Cards:      cards,
	}

	app := tui.New(ctx, profiles, tui.Options{
		Viewer:    cfg.Session.Viewer,
		Username:  *user,
		Platform:  profile.ParsePlatform(cfg.UI.Platform),
		TileWidth: cfg.UI.TileWidth,
	})
	log.Printf("start: viewer=%s user=%s db=%s", cfg.Session.Viewer, app.Username(), cfg.Database.Path)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
