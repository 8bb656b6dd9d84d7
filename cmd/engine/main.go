package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"bazaar-engine/internal/config"
	"bazaar-engine/internal/events"
	"bazaar-engine/internal/httpapi"
	"bazaar-engine/internal/scheduler"
	"bazaar-engine/internal/secrets"
	"bazaar-engine/internal/source"
	"bazaar-engine/internal/store"
	"bazaar-engine/internal/view"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("BAZAAR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single instance per data dir; the journal db has one writer.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already owns %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return raw, err
		}
		norm, vr := config.NormalizeAndValidate(raw)
		if !vr.OK() {
			log.Printf("[config] errors: %v", vr.Errors)
		}
		for _, wmsg := range vr.Warnings {
			log.Printf("[config] warning: %s", wmsg)
		}
		return norm, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "journal.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()
	tokens := secrets.Store{}

	hooks := view.Hooks{
		OnSourceDone: func(st *source.State, ferr error) {
			snap := st.Snapshot()
			run := store.FetchRun{
				Source:     snap.Name,
				Status:     string(snap.Status),
				Items:      snap.Items,
				Error:      snap.Error,
				DurationMs: snap.DurationMs,
			}
			jctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if jerr := store.RecordFetch(jctx, db, run); jerr != nil {
				log.Printf("[journal] %v", jerr)
			}
			cancel()

			typ := events.TypeSourceLoaded
			if ferr != nil {
				typ = events.TypeSourceFailed
			}
			hub.Publish(events.MakeEvent("", typ, 1, snap))
		},
		OnUpdated: func(viewName string) {
			hub.Publish(events.MakeEvent("", events.TypeViewUpdated, 1, map[string]any{"view": viewName}))
		},
	}

	session := view.NewSession(cfg, tokens, hooks)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Background refresh + journal retention
	go scheduler.Every(rootCtx, time.Duration(cfg.Fetch.RefreshSeconds)*time.Second, "refresh", func(ctx context.Context) error {
		session.RefreshAllViews(ctx)
		return nil
	})
	go scheduler.Every(rootCtx, 24*time.Hour, "journal-cleanup", func(ctx context.Context) error {
		cur := cfgVal.Load().(config.Config)
		n, cerr := store.CleanupOldRuns(db, cur.Journal.RetentionDays)
		if n > 0 {
			log.Printf("[journal-cleanup] deleted=%d", n)
		}
		return cerr
	})

	mux := httpapi.NewMux(httpapi.Deps{
		Session:     session,
		Hub:         hub,
		DB:          db,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		OnCfgReload: session.Reconfigure,
		Tokens:      tokens,
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownToken, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&shutdownToken, srv))
	if err := os.WriteFile(filepath.Join(dataDir, "shutdown_token"), []byte(shutdownToken), 0o600); err != nil {
		log.Printf("[main] could not persist shutdown token: %v", err)
	}

	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
