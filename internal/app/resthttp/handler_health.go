package resthttp

import (
	"net/http"

	"github.com/sir_venger/step_drop/pkg/httperrors"
)

type healthResp struct {
	Status string `json:"status"`
}

// health не трогает диск и отвечает всегда одинаково.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, healthResp{Status: "ok"})
}
