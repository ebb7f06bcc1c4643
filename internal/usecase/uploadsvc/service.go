package uploadsvc

import (
	"context"
	"io"

	"github.com/sir_venger/step_drop/internal/models"
)

type (
	// BlobStorage хранилище содержимого загруженных файлов
	BlobStorage interface {
		Put(ctx context.Context, name string, r io.Reader) (int64, error)
	}

	// Service принимает STEP-файлы и сохраняет их в хранилище.
	Service interface {
		Upload(ctx context.Context, name string, r io.Reader) (models.UploadResult, error)
	}
)

type Deps struct {
	Storage BlobStorage
}

type Uploads struct {
	Deps
}

// New конструирует сервис загрузки с заданными зависимостями.
func New(deps Deps) *Uploads {
	return &Uploads{Deps: deps}
}

var _ Service = (*Uploads)(nil)
