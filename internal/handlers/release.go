package handlers

import (
	"net/http"

	"github.com/seyaul/hana-auth/config"
	"github.com/seyaul/hana-auth/types"
)

// ReleaseHandler serves the client release metadata.
type ReleaseHandler struct {
	info types.ReleaseInfo
}

// NewReleaseHandler constructs a ReleaseHandler from config.
func NewReleaseHandler(cfg config.ReleaseConfig) *ReleaseHandler {
	return &ReleaseHandler{
		info: types.ReleaseInfo{
			Version:     cfg.Version,
			DownloadURL: cfg.DownloadURL,
			ReleaseDate: cfg.ReleaseDate,
			Required:    cfg.Required,
			Changelog:   cfg.Changelog,
		},
	}
}

// Version returns the current client release metadata.
func (h *ReleaseHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.info)
}
