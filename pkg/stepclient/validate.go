package stepclient

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sir_venger/step_drop/pkg/stepfile"
)

// MaxUploadSize ограничивает размер только на клиенте, сервер размер не проверяет.
const MaxUploadSize = 100 << 20

var (
	ErrUnsupportedFile = errors.New("Only .step and .stp files are allowed")
	ErrTooLarge        = errors.New("File size must be less than 100MB")
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// ValidateFile проверяет файл до отправки, чтобы не гонять заведомо отвергнутые данные.
func ValidateFile(name string, size int64) error {
	if !stepfile.HasExtension(name) {
		return ErrUnsupportedFile
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: %s", ErrTooLarge, FormatFileSize(size))
	}

	return nil
}

// FormatFileSize печатает размер с точностью до двух знаков без хвостовых нулей: 1536 -> "1.5 KB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	unit := 0
	value := float64(n)
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}
