package resthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sir_venger/step_drop/internal/config"
	"github.com/sir_venger/step_drop/internal/repo"
	"github.com/sir_venger/step_drop/internal/usecase/uploadsvc"
)

const corsMaxAge = 600

var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

type Server struct {
	Uploads uploadsvc.Service
	Cfg     *config.Config
}

// NewServer конструктор. Каталог загрузок создаётся здесь же; ошибка означает отказ старта.
func NewServer(cfg *config.Config) (http.Handler, *Server, error) {
	uploads, err := buildUploadService(cfg)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Uploads: uploads,
		Cfg:     cfg,
	}

	return srv.routes(), srv, nil
}

func buildUploadService(cfg *config.Config) (uploadsvc.Service, error) {
	store, err := repo.OpenDisk(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	return uploadsvc.New(uploadsvc.Deps{Storage: store}), nil
}

// routes регистрирует middleware и обработчики.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	// Preflight-запросы CORS тоже получают X-Request-Id и строку access-лога.
	rtr.Use(requestID)
	rtr.Use(accessLog)
	rtr.Use(cors.Handler(s.corsOptions()))
	rtr.Use(middleware.Recoverer)

	rtr.Get("/health", s.health)
	rtr.Post("/upload", s.postUpload)

	return rtr
}

// corsOptions при "*" отражает Origin запроса: браузеры не принимают "*" вместе с credentials.
func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}

	if s.Cfg.AllowsAnyOrigin() {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		opts.AllowedOrigins = s.Cfg.CORSOrigins
	}

	return opts
}
