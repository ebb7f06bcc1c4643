package uploadsvc

import (
	"context"
	"fmt"
	"io"

	"github.com/sir_venger/step_drop/internal/models"
	"github.com/sir_venger/step_drop/internal/repo"
	"github.com/sir_venger/step_drop/pkg/stepfile"
)

// Upload проверяет имя и целиком передаёт поток в хранилище. Содержимое не анализируется.
func (s *Uploads) Upload(ctx context.Context, name string, r io.Reader) (models.UploadResult, error) {
	if err := ValidateName(name); err != nil {
		return models.UploadResult{}, err
	}

	n, err := s.Storage.Put(ctx, name, r)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("store %q: %w", name, err)
	}

	return models.UploadResult{Filename: name, Size: n}, nil
}

// ValidateName сначала проверяет расширение, затем что имя не выходит за каталог загрузок.
func ValidateName(name string) error {
	if !stepfile.HasExtension(name) {
		return models.ErrInvalidExtension
	}
	if !repo.IsPlainName(name) {
		return models.ErrInvalidFilename
	}

	return nil
}
