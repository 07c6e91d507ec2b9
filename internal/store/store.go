// Package store persists calculations between CLI invocations. Each
// calculation is one JSON document in exactly the exchange/export shape, so a
// stored file and an exported file are interchangeable.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// CalcInfo identifies a stored calculation without parsing its document.
type CalcInfo struct {
	ID      string
	Base    int
	SavedAt time.Time
	Bytes   int64
}

// Save writes the dataset and selection under a fresh calculation ID of the
// form fib_<base>_<unix>.
func (s *Store) Save(d *payload.Dataset, selected []int) (string, error) {
	id := fmt.Sprintf("fib_%d_%d", d.Base, time.Now().Unix())
	f, err := os.Create(s.path(id))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := payload.WriteExport(f, d, selected); err != nil {
		return "", err
	}
	return id, nil
}

// SaveAs overwrites the document for an existing calculation, keeping its ID.
// Used when the selection changes and should persist.
func (s *Store) SaveAs(id string, d *payload.Dataset, selected []int) error {
	f, err := os.Create(s.path(id))
	if err != nil {
		return err
	}
	defer f.Close()
	return payload.WriteExport(f, d, selected)
}

// Load reads a stored calculation.
func (s *Store) Load(id string) (*payload.Dataset, []int, error) {
	d, sel, err := payload.LoadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("unknown calculation: %s", id)
		}
		return nil, nil, err
	}
	return d, sel, nil
}

// List enumerates stored calculations, newest first. The base is recovered
// from the ID so listing never parses the documents.
func (s *Store) List() ([]CalcInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CalcInfo{}, nil
		}
		return nil, err
	}

	infos := make([]CalcInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		base, ok := parseID(id)
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, CalcInfo{ID: id, Base: base, SavedAt: fi.ModTime(), Bytes: fi.Size()})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].SavedAt.After(infos[j].SavedAt) })
	return infos, nil
}

// Latest returns the most recently saved calculation ID, or "" when the store
// is empty.
func (s *Store) Latest() (string, error) {
	infos, err := s.List()
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", nil
	}
	return infos[0].ID, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func parseID(id string) (int, bool) {
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "fib" {
		return 0, false
	}
	base, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return base, true
}
