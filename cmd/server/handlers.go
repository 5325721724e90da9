package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brunobiangulo/lightningroute"
)

type handler struct {
	engine    lightningroute.Engine
	timeout   time.Duration
	maxUpload int64
	log       *slog.Logger
}

func newHandler(e lightningroute.Engine, cfg lightningroute.Config, log *slog.Logger) *handler {
	return &handler{
		engine:    e,
		timeout:   cfg.RequestTimeout(),
		maxUpload: cfg.MaxUploadBytes,
		log:       log,
	}
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate-map", h.handleGenerateMap)
	mux.HandleFunc("POST /api/generate-map/upload", h.handleUpload)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleRoot)
	return mux
}

func (h *handler) context(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// POST /api/generate-map
func (h *handler) handleGenerateMap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: expected JSON with 'text'")
		return
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	g, err := h.engine.GenerateMap(ctx, *req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// POST /api/generate-map/upload
// Multipart upload in field "file"; the document text feeds the same pipeline.
func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request: expected multipart field 'file'")
		return
	}
	defer file.Close()

	// Only the extension of the client's name is kept; it selects the parser.
	ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))

	tmpDir, err := os.MkdirTemp("", "lightningroute-upload-")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		h.log.Error("creating temp dir", "error", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "upload"+ext)
	dst, err := os.Create(tmpPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		h.log.Error("creating temp file", "error", err)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "failed to save file")
		h.log.Error("saving uploaded file", "error", err)
		return
	}
	if err := dst.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save file")
		h.log.Error("closing uploaded file", "error", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	g, err := h.engine.GenerateMapFromFile(ctx, tmpPath)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// GET /
func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "LightningRoute is running")
}

// fail maps a pipeline error to a status code and logs its cause.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	h.log.Error("generate map failed",
		"request_id", requestIDFrom(r.Context()),
		"status", status,
		"error", err,
	)

	switch status {
	case http.StatusUnsupportedMediaType:
		writeError(w, status, "unsupported file format; accepted: "+strings.Join(h.engine.Formats(), ", "))
	case http.StatusBadRequest:
		writeError(w, status, err.Error())
	default:
		writeError(w, status, "failed to generate mind map: "+err.Error())
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lightningroute.ErrInvalidInput), errors.Is(err, lightningroute.ErrNoText):
		return http.StatusBadRequest
	case errors.Is(err, lightningroute.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
