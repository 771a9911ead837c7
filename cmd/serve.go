package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/artor/studysearch/pkg/api"
	"github.com/artor/studysearch/pkg/config"
	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/progress"
	"github.com/artor/studysearch/pkg/storage"
	"github.com/artor/studysearch/pkg/updater"
	"github.com/artor/studysearch/pkg/version"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API server",
		Action: func(ctx context.Context, c *cli.Command) error {
			enableDebug(c.Bool("debug"))
			return serve(ctx, c.String("config"))
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	logger := log.ForService("serve")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	aggregator := progress.NewAggregator(store, cfg.CompletionThreshold)

	var checker *updater.Checker
	if cfg.Updater != nil && cfg.Updater.Repo != "" {
		checker, err = updater.NewChecker(cfg.Updater.Repo, cfg.Updater.Token, version.Version)
		if err != nil {
			return fmt.Errorf("configuring update checker: %w", err)
		}
	}

	// The handler is swapped atomically on config reload so base URL and
	// slug changes apply without dropping connections.
	var handler atomic.Value
	handler.Store(buildHandler(store, cfg, aggregator, checker))

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.Load().(http.Handler).ServeHTTP(w, r)
		}),
	}

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	if checker != nil {
		go checker.Run(serverCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Signal handling - includes SIGHUP for reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	reload := func() {
		newCfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Warnf("reloading config: %v", err)
			return
		}
		aggregator.SetThreshold(newCfg.CompletionThreshold)
		handler.Store(buildHandler(store, newCfg, aggregator, checker))
		logger.Infof("configuration reloaded (threshold %d, slug %q)",
			newCfg.CompletionThreshold, newCfg.CoursesPageSlug)
	}

	var watchEvents chan fsnotify.Event
	var watchErrors chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		watchEvents = watcher.Events
		watchErrors = watcher.Errors
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()

		if err := watcher.Add(configPath); err != nil {
			logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			logger.Infof("watching config file for changes: %s", configPath)
		}
	}

	fmt.Println("Server started. Press Ctrl+C to stop, send SIGHUP to reload, or modify the config file for automatic reload.")

	for {
		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Infof("received SIGHUP, reloading configuration")
				reload()
			case syscall.SIGINT, syscall.SIGTERM:
				fmt.Println("\nShutting down...")
				serverCancel()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutting down server: %w", err)
				}
				return nil
			}
		case event, ok := <-watchEvents:
			if !ok {
				continue
			}
			// Editors often replace the file instead of writing in place.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)
					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						logger.Warnf("config file removed and not replaced, skipping reload")
						continue
					}
					if err := watcher.Add(configPath); err != nil {
						logger.Warnf("failed to re-add config file to watcher: %v", err)
					}
				} else {
					time.Sleep(100 * time.Millisecond)
				}
				logger.Infof("config file changed (%s), reloading", event.Op)
				reload()
			}
		case err, ok := <-watchErrors:
			if !ok {
				continue
			}
			logger.Warnf("config file watcher error: %v", err)
		}
	}
}

func buildHandler(store *storage.Store, cfg *config.Config, aggregator *progress.Aggregator, checker *updater.Checker) http.Handler {
	service := buildSearchService(store, cfg)
	return api.NewServer(store, service, aggregator, checker).Handler()
}
