package repo

import (
	"context"
	"io"
	"sync"

	"github.com/sir_venger/step_drop/internal/models"
)

// MemoryStore хранит содержимое файлов только в оперативной памяти; удобно для тестов.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStore создаёт пустое in-memory хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: map[string][]byte{}}
}

// Put читает поток полностью и заменяет содержимое под тем же именем.
func (s *MemoryStore) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	if !IsPlainName(name) {
		return 0, models.ErrInvalidFilename
	}

	b, err := io.ReadAll(contextReader{ctx: ctx, r: r})
	if err != nil {
		return int64(len(b)), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = b
	return int64(len(b)), nil
}

// Get возвращает копию содержимого файла и признак его наличия.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// Len возвращает количество сохранённых файлов.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
