package cmd

import (
	"fmt"

	"github.com/artor/studysearch/pkg/config"
	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/search"
	"github.com/artor/studysearch/pkg/storage"
)

// openStore opens the configured content database and brings the schema
// up to date.
func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DBPath, err)
	}
	if err := store.InitializeSchema(); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close store: %v\n", closeErr)
		}
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// buildSearchService wires the query engine with the built-in course
// lister and the store-backed enrichment source.
func buildSearchService(store *storage.Store, cfg *config.Config) *search.Service {
	service := search.NewService(store, search.Options{
		Enricher:        store,
		BaseURL:         cfg.BaseURL,
		CoursesPageSlug: cfg.CoursesPageSlug,
	})
	service.SetLister(search.NewStoreLister(store, service.Formatter()))
	return service
}

func enableDebug(debug bool) {
	if debug {
		log.SetGlobalDebug(true)
	}
}
