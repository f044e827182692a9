package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"edufair/internal/domain"
	"edufair/internal/util/atomicfile"
)

const registrationsFile = "registrations.json"

// FileStore keeps all registrations in a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir, creating dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, registrationsFile)}, nil
}

func (s *FileStore) Save(_ context.Context, r domain.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs := make(map[string]domain.Registration)
	if err := atomicfile.ReadJSON(s.path, &regs); err != nil {
		return err
	}
	if _, ok := regs[r.ID]; ok {
		return ErrDuplicate
	}
	regs[r.ID] = r
	return atomicfile.WriteJSON(s.path, regs, 0o600)
}

func (s *FileStore) Get(_ context.Context, id string) (domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs := make(map[string]domain.Registration)
	if err := atomicfile.ReadJSON(s.path, &regs); err != nil {
		return domain.Registration{}, err
	}
	r, ok := regs[id]
	if !ok {
		return domain.Registration{}, ErrNotFound
	}
	return r, nil
}

func (s *FileStore) List(_ context.Context) ([]domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs := make(map[string]domain.Registration)
	if err := atomicfile.ReadJSON(s.path, &regs); err != nil {
		return nil, err
	}
	out := make([]domain.Registration, 0, len(regs))
	for _, r := range regs {
		out = append(out, r)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

func sortNewestFirst(regs []domain.Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		if !regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].CreatedAt.After(regs[j].CreatedAt)
		}
		return regs[i].ID < regs[j].ID
	})
}

// Compile-time assertion that FileStore implements domain.RegistrationStore.
var _ domain.RegistrationStore = (*FileStore)(nil)
