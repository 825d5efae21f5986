package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/asheem/orbital/internal/app"
	"github.com/asheem/orbital/internal/config"
	"github.com/asheem/orbital/internal/control"
	"github.com/asheem/orbital/internal/gesture"
	"github.com/asheem/orbital/internal/scene"
	"github.com/asheem/orbital/internal/server"
	"github.com/asheem/orbital/internal/store"
	"github.com/asheem/orbital/internal/tray"
)

func main() {
	fmt.Println("Orbital - Gesture Controlled Globe")

	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to the YAML config file")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the store
	dbPath, err := cfg.DBPath()
	if err != nil {
		log.Fatalf("Failed to resolve database path: %v", err)
	}
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The config file seeds the tuning; the database owns it afterwards
	if err := st.Settings().SeedTuning(cfg.Tuning); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}
	tuning, err := st.Settings().LoadTuning()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Scene: the authoritative globe state, pushed to browsers over WebSocket
	globe := scene.NewGlobe(cfg.Scene.MinZoom, cfg.Scene.MaxZoom)
	remote := scene.NewRemoteScene(globe)
	defer remote.Close()

	// Detection pipeline
	a := app.New(app.Config{
		Store:          st,
		CameraID:       cfg.Camera.DeviceID,
		MotionThresh:   cfg.Camera.MotionThreshold,
		DebounceFrames: tuning.DebounceFrames,
	})

	// Control loop: maps confirmed gestures onto the scene
	mapper := control.NewMapper(remote, tuning)
	driver := control.NewDriver(a, mapper, 0)

	applyTuning := func(t control.Tuning) {
		mapper.SetTuning(t)
		a.SetDebounceFrames(t.DebounceFrames)
	}

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir:   staticDir,
		Store:       st,
		Camera:      a.Camera(),
		Source:      a,
		Scene:       remote,
		ApplyTuning: applyTuning,
	})

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Printf("Camera unavailable (%v), gesture control disabled", err)
		a.SetEnabled(false)
	}
	driver.Start()

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		driver.Stop()
		a.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if *noTray {
		if err := g.Wait(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	// The tray owns the main goroutine; quitting it shuts everything down
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnOpenViewer(func() {
		fmt.Printf("Globe viewer: http://localhost%s/\n", cfg.Server.Addr)
	})
	t.OnQuit(cancel)

	a.RegisterStateCallback(func(state gesture.HandState) {
		t.SetLastGesture(state.Label.String())
	})

	t.Run()

	cancel()
	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.orbital/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".orbital", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
