package resthttp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/sir_venger/step_drop/internal/models"
	"github.com/sir_venger/step_drop/pkg/httperrors"
)

const uploadFieldName = "file"

// postUploadResp — тело ответа с принятым именем файла.
type postUploadResp struct {
	Filename string `json:"filename"`
}

// postUpload потоково читает multipart-тело и передаёт часть file сервису загрузок.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request) {
	rid := RequestIDFromContext(r.Context())

	part, name, err := nextFilePart(r)
	if err != nil {
		log.Printf("rid=%s msg=%q err=%v", rid, "upload_rejected", err)
		httperrors.Write(w, err)
		return
	}
	defer part.Close()

	res, err := s.Uploads.Upload(r.Context(), name, part)
	if err != nil {
		log.Printf("rid=%s msg=%q filename=%q err=%v", rid, "upload_failed", name, err)
		httperrors.Write(w, err)
		return
	}

	log.Printf("rid=%s msg=%q filename=%q bytes=%d", rid, "upload_stored", res.Filename, res.Size)
	httperrors.WriteJSON(w, http.StatusOK, postUploadResp{Filename: res.Filename})
}

// nextFilePart пропускает части до поля file и возвращает его вместе с исходным именем.
func nextFilePart(r *http.Request) (*multipart.Part, string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrMissingFile, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", models.ErrMissingFile
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", models.ErrMissingFile, err)
		}

		if part.FormName() != uploadFieldName {
			_ = part.Close()
			continue
		}

		name, ok := rawFileName(part)
		if !ok {
			_ = part.Close()
			return nil, "", models.ErrMissingFile
		}

		return part, name, nil
	}
}

// rawFileName берёт filename из Content-Disposition как есть.
// multipart.Part.FileName прогоняет имя через filepath.Base, а ответ должен эхом вернуть имя клиента.
func rawFileName(p *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]

	return name, ok
}
