package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	clientDir := flag.String("client", "", "Path to the renderer client directory (empty: no static files)")
	levelsDir := flag.String("levels", "", "Directory of level<N>.txt files (empty: builtin levels)")
	start := flag.Int("start", 0, "Default starting level index")
	cfgPath := flag.String("config", "", "YAML tuning file overlaid on the defaults")
	dbPath := flag.String("db", "runs.db", "SQLite run log (empty: disabled)")
	watch := flag.Bool("watch", false, "Reload levels and config when their files change")
	flag.Parse()

	cfg, err := LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	levels, err := NewLevelLibrary(*levelsDir, cfg.Symbols.Pad())
	if err != nil {
		if errors.Is(err, ErrNoLevels) {
			log.Fatalf("no level files in %q", *levelsDir)
		}
		log.Fatalf("%v", err)
	}
	if n := len(levels.Levels()); *start < 0 || *start >= n {
		log.Fatalf("-start %d out of range, %d levels loaded", *start, n)
	}

	var db *DB
	if *dbPath != "" {
		db, err = OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer db.Close()
	}
	var analytics *Analytics
	if db != nil {
		analytics = NewAnalytics(db)
		defer analytics.Stop()
	}
	pairing := NewPairing(db)

	runs := NewRunManager(cfg, levels, db, analytics)
	runs.SetDefaultStart(*start)
	hub := NewHub(runs, db, pairing)
	go hub.Run()

	if *watch {
		dirs := watchDirs(*levelsDir, *cfgPath)
		if len(dirs) == 0 {
			log.Printf("watch: nothing to watch with builtin levels and no config file")
		} else {
			w, err := NewWatcher(dirs...)
			if err != nil {
				log.Fatalf("watch: %v", err)
			}
			defer w.Close()
			go reloadLoop(w, levels, runs, *cfgPath)
		}
	}

	mux := SetupRoutes(hub, *clientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", *addr)
		log.Printf("Loaded %d levels", len(levels.Levels()))
		if *clientDir != "" {
			log.Printf("Serving client files from %s", *clientDir)
		}
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	runs.StopAll()
	server.Close()
}

func watchDirs(levelsDir, cfgPath string) []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(d string) {
		if d != "" && !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	add(levelsDir)
	if cfgPath != "" {
		add(filepath.Dir(cfgPath))
	}
	return dirs
}

// reloadLoop applies file changes to runs started afterwards
func reloadLoop(w *Watcher, levels *LevelLibrary, runs *RunManager, cfgPath string) {
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			if isConfigFile(name) {
				if cfgPath == "" || filepath.Clean(name) != filepath.Clean(cfgPath) {
					continue
				}
				cfg, err := LoadConfig(cfgPath)
				if err != nil {
					log.Printf("reload config: %v", err)
					continue
				}
				// levels are padded with a blank symbol, so re-parse them first
				if err := levels.SetPad(cfg.Symbols.Pad()); err != nil {
					log.Printf("reload config: levels: %v", err)
					continue
				}
				runs.SetConfig(cfg)
				log.Printf("reloaded config from %s", cfgPath)
				continue
			}
			if err := levels.Reload(); err != nil {
				log.Printf("reload levels: %v", err)
				continue
			}
			log.Printf("reloaded %d levels", len(levels.Levels()))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}
