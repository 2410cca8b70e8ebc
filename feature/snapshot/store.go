package snapshot

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"card-ledger/core/csvio"
	"card-ledger/feature/cards"
	"card-ledger/feature/prices"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when no output exists for an expansion.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a parsed output file.
type Snapshot struct {
	Path    string              `json:"path"`
	ModTime time.Time           `json:"mod_time"`
	Header  []string            `json:"header"`
	Rows    []map[string]string `json:"rows"`
}

// Store loads output files through a bounded cache.
type Store struct {
	dir   string
	cache *lru.Cache[string, *Snapshot]
	sf    singleflight.Group
	loads atomic.Int64
}

// NewStore creates a store over dir holding at most size parsed files.
func NewStore(dir string, size int) (*Store, error) {
	if size <= 0 {
		size = 32
	}
	cache, err := lru.New[string, *Snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache: %w", err)
	}
	return &Store{dir: dir, cache: cache}, nil
}

// Cards returns the cards output of an expansion.
func (s *Store) Cards(expansion string) (*Snapshot, error) {
	return s.Load(cards.OutputPath(s.dir, expansion))
}

// Prices returns the prices output of an expansion.
func (s *Store) Prices(expansion string) (*Snapshot, error) {
	return s.Load(prices.OutputPath(s.dir, expansion))
}

// Load returns the parsed file at path, reading it only when the cached
// copy is missing or older than the file.
func (s *Store) Load(path string) (*Snapshot, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	key := path + "@" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
	if snap, ok := s.cache.Get(key); ok {
		return snap, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		if snap, ok := s.cache.Get(key); ok {
			return snap, nil
		}
		snap, err := read(path, info.ModTime())
		if err != nil {
			return nil, err
		}
		s.loads.Add(1)
		s.cache.Add(key, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func read(path string, modTime time.Time) (*Snapshot, error) {
	table, err := csvio.ReadFile(path, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		m := make(map[string]string, len(table.Header))
		for _, col := range table.Header {
			m[col] = r.Get(col)
		}
		rows = append(rows, m)
	}
	return &Snapshot{Path: path, ModTime: modTime, Header: table.Header, Rows: rows}, nil
}
