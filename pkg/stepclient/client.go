// Package stepclient — HTTP-клиент сервиса приёма STEP-файлов.
package stepclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	healthPath = "/health"
	uploadPath = "/upload"
	fieldName  = "file"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
}

// APIError описывает ответ сервера с кодом не из 2xx.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

type Client interface {
	// Health Проверить, что сервер жив
	Health(ctx context.Context) (HealthResponse, error)
	// Upload Отправить файл полем file; size нужен только для прогресс-бара
	Upload(ctx context.Context, name string, r io.Reader, size int64) (UploadResponse, error)
}

// Option настраивает клиента.
type Option func(*httpClient)

// WithTimeout задаёт общий таймаут запроса, включая передачу тела.
func WithTimeout(d time.Duration) Option {
	return func(h *httpClient) { h.c.Timeout = d }
}

// WithHTTPClient подменяет транспорт, например на клиент httptest.Server.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает ASCII-индикатор загрузки в указанный writer.
func WithProgress(w io.Writer) Option {
	return func(h *httpClient) { h.progress = w }
}

type httpClient struct {
	c        *http.Client
	baseURL  string
	progress io.Writer
}

// New создаёт HTTP-клиент по умолчанию.
func New(baseURL string, opts ...Option) Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	h := &httpClient{
		c:       &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Health запрашивает GET /health.
func (h *httpClient) Health(ctx context.Context) (HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+healthPath, nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var out HealthResponse
	if err = h.do(req, &out); err != nil {
		return HealthResponse{}, err
	}

	return out, nil
}

// Upload стримит multipart-тело через pipe, не держа файл в памяти.
func (h *httpClient) Upload(ctx context.Context, name string, r io.Reader, size int64) (UploadResponse, error) {
	progress := newUploadProgress(h.progress, name, size)
	body := progress.reader(r)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile(fieldName, name)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err = io.Copy(fw, body); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+uploadPath, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		progress.done(err)
		return UploadResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResponse
	if err = h.do(req, &out); err != nil {
		progress.done(err)
		return UploadResponse{}, err
	}

	progress.done(nil)
	return out, nil
}

func (h *httpClient) do(req *http.Request, out any) error {
	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(b, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			apiErr.Detail = s
		} else {
			apiErr.Detail = string(payload.Detail)
		}
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(b))
	return apiErr
}
