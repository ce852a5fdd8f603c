package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/seyaul/hana-auth/internal/services"
	"github.com/seyaul/hana-auth/types"
)

const maxUploadBytes = 128 << 20

// ArtifactHandler provides the snapshot upload and download endpoints.
type ArtifactHandler struct {
	artifactService *services.ArtifactService
}

// NewArtifactHandler constructs an ArtifactHandler.
func NewArtifactHandler(artifactService *services.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifactService: artifactService}
}

// ArtifactRouter registers upload and download routes. Uploads require an
// authenticated user; downloads stay anonymous so fleet clients can fetch
// data without credentials.
func ArtifactRouter(r chi.Router, handler *ArtifactHandler, authHandler *AuthHandler) {
	r.With(authHandler.RequireAuth).Post("/upload/{tool}", handler.Upload)
	r.Get("/download/{tool}/latest", handler.DownloadLatest)
}

// Upload accepts a multipart CSV snapshot for a tool and repoints the
// tool's latest pointer to it.
func (h *ArtifactHandler) Upload(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tool := chi.URLParam(r, "tool")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	storedAs, err := h.artifactService.Upload(r.Context(), tool, header.Filename, subject, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownTool):
			writeError(w, http.StatusBadRequest, "unknown tool")
		case errors.Is(err, services.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, "csv only")
		default:
			writeError(w, http.StatusInternalServerError, "failed to store snapshot")
		}
		return
	}

	writeJSON(w, http.StatusOK, types.UploadReceipt{OK: true, StoredAs: storedAs})
}

// DownloadLatest streams the most recent snapshot for the tool.
func (h *ArtifactHandler) DownloadLatest(w http.ResponseWriter, r *http.Request) {
	tool := chi.URLParam(r, "tool")

	content, err := h.artifactService.DownloadLatest(r.Context(), tool)
	if err != nil {
		if errors.Is(err, services.ErrNoSnapshot) {
			writeError(w, http.StatusNotFound, "no file yet for this tool")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch snapshot")
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, content)
}
