package repo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sir_venger/step_drop/internal/models"
)

// Disk хранит загруженные файлы плоско в одном каталоге на локальном диске.
type Disk struct {
	root string
}

// OpenDisk создаёт каталог загрузок при необходимости и проверяет, что это именно каталог.
// Ошибка здесь означает, что сервис не может стартовать.
func OpenDisk(root string) (*Disk, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload dir is empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat upload dir: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("upload dir %s is not a directory", abs)
	}

	return &Disk{root: abs}, nil
}

// Root возвращает абсолютный путь каталога загрузок.
func (d *Disk) Root() string {
	return d.root
}

// Path вычисляет путь файла внутри каталога, отказывая всему, что из него выходит.
func (d *Disk) Path(name string) (string, error) {
	if !IsPlainName(name) {
		return "", models.ErrInvalidFilename
	}

	p := filepath.Join(d.root, name)
	if filepath.Dir(p) != d.root {
		return "", models.ErrInvalidFilename
	}

	return p, nil
}

// Put записывает поток в файл целиком, перезаписывая существующий файл с тем же именем.
func (d *Disk) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	p, err := d.Path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", name, err)
	}

	n, err := io.Copy(f, contextReader{ctx: ctx, r: r})
	if err != nil {
		_ = f.Close()
		return n, fmt.Errorf("write %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", name, err)
	}

	return n, nil
}

// IsPlainName сообщает, что имя состоит из одного элемента пути.
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, "/\\\x00")
}

// contextReader прерывает копирование после отмены контекста запроса.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
