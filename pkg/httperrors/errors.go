package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/step_drop/internal/models"
)

// Body — JSON-тело ответа с ошибкой.
type Body struct {
	Detail string `json:"detail"`
}

// Write переводит доменную ошибку в HTTP-статус и тело {"detail": ...}.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidExtension):
		WriteDetail(w, http.StatusBadRequest, models.ErrInvalidExtension.Error())
	case errors.Is(err, models.ErrInvalidFilename):
		WriteDetail(w, http.StatusBadRequest, models.ErrInvalidFilename.Error())
	case errors.Is(err, models.ErrMissingFile):
		WriteDetail(w, http.StatusUnprocessableEntity, models.ErrMissingFile.Error())
	default:
		// Детали ввода-вывода наружу не отдаём.
		WriteDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, Body{Detail: detail})
}

// WriteJSON отдаёт v как application/json с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
