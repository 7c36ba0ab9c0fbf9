package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore caches payloads as JSON files named {TICKER}_{dataType}.json.
// Freshness is judged by file modification time, so a cache survives
// process restarts and can be inspected or deleted by hand.
type FileStore struct {
	dir string
	ttl time.Duration
}

// NewFileStore creates a file cache rooted at dir.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &FileStore{dir: dir, ttl: ttl}, nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, ticker, dataType string, dest interface{}) (bool, error) {
	path := s.path(ticker, dataType)

	info, err := os.Stat(path)
	if err != nil {
		return false, nil // miss
	}

	if time.Since(info.ModTime()) > s.ttl {
		return false, nil // expired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read cache file: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cache file %s: %w", filepath.Base(path), err)
	}

	return true, nil
}

// Set implements Store.
func (s *FileStore) Set(_ context.Context, ticker, dataType string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}

	if err := os.WriteFile(s.path(ticker, dataType), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, tickers ...string) (int, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return 0, err
	}

	keep := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		keep[strings.ToUpper(t)] = true
	}

	removed := 0
	for _, entry := range entries {
		if len(tickers) > 0 && !keep[entry.Ticker] {
			continue
		}
		if err := os.Remove(s.path(entry.Ticker, entry.DataType)); err != nil {
			return removed, fmt.Errorf("remove cache file: %w", err)
		}
		removed++
	}

	return removed, nil
}

// Entries implements Store.
func (s *FileStore) Entries(_ context.Context) ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	var entries []Entry
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(file.Name(), ".json")
		idx := strings.LastIndex(name, "_")
		if idx <= 0 {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Ticker:    name[:idx],
			DataType:  name[idx+1:],
			FetchedAt: info.ModTime(),
			Expired:   time.Since(info.ModTime()) > s.ttl,
		})
	}

	return entries, nil
}

func (s *FileStore) path(ticker, dataType string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", strings.ToUpper(ticker), dataType))
}
