// Package storage provides local file persistence for the item catalog.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"eft-overlay/internal/catalog"
)

const (
	cacheFile  = "all_items.json"
	traderFile = "data.json"
)

// Store reads and writes the catalog cache under a fixed directory. The
// cache is a warm-start optimization only: concurrent writers race with
// "latest full write wins" semantics and the file is never treated as a
// source of truth beyond process restart.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// CachePath returns the catalog cache file path.
func (s *Store) CachePath() string {
	return filepath.Join(s.dir, cacheFile)
}

// ReadCatalog loads the cached catalog. A missing file is not an error;
// it returns an empty slice.
func (s *Store) ReadCatalog() ([]catalog.Item, error) {
	data, err := os.ReadFile(s.CachePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []catalog.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WriteCatalog persists the full catalog to the cache file.
func (s *Store) WriteCatalog(items []catalog.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.CachePath(), data, 0o644)
}

// ReadTraderPrices loads the secondary trader-price dataset. A missing
// file yields an empty overlay.
func (s *Store) ReadTraderPrices() (catalog.TraderPrices, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, traderFile))
	if os.IsNotExist(err) {
		return catalog.TraderPrices{}, nil
	}
	if err != nil {
		return nil, err
	}
	return catalog.ParseTraderPrices(data)
}
