package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"merch-intake/models"
)

//go:embed assets/catalog.yaml
var defaultCatalogYAML []byte

// CatalogProvider returns the current catalog snapshot
type CatalogProvider interface {
	Catalog() *models.Catalog
}

// CatalogService serves the product catalog. The embedded default can be
// overridden by a YAML file, which is reloaded when it changes on disk.
type CatalogService struct {
	mu       sync.RWMutex
	catalog  *models.Catalog
	path     string
	debounce time.Duration
}

var _ CatalogProvider = (*CatalogService)(nil)

// DefaultCatalog parses the embedded catalog
func DefaultCatalog() *models.Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// ParseCatalog decodes and checks a catalog YAML document
func ParseCatalog(data []byte) (*models.Catalog, error) {
	var c models.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}
	if c.MinimumOrderQuantity <= 0 {
		return nil, errors.New("catalog minimumOrderQuantity must be positive")
	}
	if c.RushThresholdDays < 0 {
		return nil, errors.New("catalog rushThresholdDays must not be negative")
	}
	for i, cw := range c.Colorways {
		if !models.IsHexColor(cw.Hex) {
			return nil, fmt.Errorf("catalog colorway %d (%s) has invalid hex %q", i, cw.ID, cw.Hex)
		}
	}
	return &c, nil
}

// NewCatalogService loads the catalog from path, or the embedded default when path is empty
func NewCatalogService(path string) (*CatalogService, error) {
	s := &CatalogService{
		catalog:  DefaultCatalog(),
		debounce: 200 * time.Millisecond,
	}
	if path == "" {
		return s, nil
	}

	s.path = filepath.Clean(path)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog returns the current snapshot. Callers must not modify it.
func (s *CatalogService) Catalog() *models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Reload re-reads the override file. On error the previous catalog is kept.
func (s *CatalogService) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", s.path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()

	log.Info().Str("path", s.path).Int("products", len(c.Products)).Msg("✓ Catalog loaded")
	return nil
}

// Watch reloads the override file whenever it changes until ctx is cancelled.
// It returns immediately when no override file is configured.
func (s *CatalogService) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	// editors replace files on save, so the directory is watched
	if err := fsw.Add(filepath.Dir(s.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch directory %s: %w", filepath.Dir(s.path), err)
	}

	go func() {
		defer fsw.Close()

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					timer.Reset(s.debounce)
				}

			case <-timer.C:
				if err := s.Reload(); err != nil {
					log.Warn().Err(err).Msg("⚠️  Catalog reload failed, keeping previous catalog")
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("⚠️  Catalog watcher error")
			}
		}
	}()

	log.Info().Str("path", s.path).Msg("👀 Watching catalog for changes")
	return nil
}
