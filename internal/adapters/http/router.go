package httpadapter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkravets/smart-file-search/internal/core/ports"
	"github.com/mkravets/smart-file-search/internal/observability/metrics"
)

const maxUploadBytes = 64 << 20

type Router struct {
	processor ports.FileProcessor
	chat      ports.FileChat
	reader    ports.FileReader
	logger    *slog.Logger
	metrics   *metrics.ServerMetrics
	service   string
}

func NewRouter(
	processor ports.FileProcessor,
	chat ports.FileChat,
	reader ports.FileReader,
	logger *slog.Logger,
	serverMetrics *metrics.ServerMetrics,
	service string,
) *Router {
	return &Router{
		processor: processor,
		chat:      chat,
		reader:    reader,
		logger:    logger,
		metrics:   serverMetrics,
		service:   service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/process", rt.processFile)
	mux.HandleFunc("/api/chat", rt.chatQuery)
	mux.HandleFunc("/api/chat/history/", rt.chatHistory)
	mux.HandleFunc("/api/files/", rt.getFileByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) processFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read uploaded file"})
		return
	}

	start := time.Now()
	view, err := rt.processor.ProcessAndUpload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		rt.recordPipeline("error", time.Since(start))
		rt.writeError(w, r, err)
		return
	}

	rt.recordPipeline(string(view.ProcessingStatus), time.Since(start))
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) chatQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		PK     string `json:"pk"`
		Search string `json:"search"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.PK) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pk is required"})
		return
	}
	if strings.TrimSpace(req.Search) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "search is required"})
		return
	}

	start := time.Now()
	answer, err := rt.chat.ProcessQuery(r.Context(), req.PK, req.Search)
	if err != nil {
		rt.recordChat("error", time.Since(start))
		rt.writeError(w, r, err)
		return
	}

	rt.recordChat("ok", time.Since(start))
	writeJSON(w, http.StatusOK, map[string]string{"content": answer})
}

func (rt *Router) chatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	fileID := strings.TrimPrefix(r.URL.Path, "/api/chat/history/")
	if fileID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file id is required"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	// Unknown files are rejected before the history lookup so the caller
	// can distinguish "no file" from "no conversation yet".
	if _, err := rt.reader.GetByID(r.Context(), fileID); err != nil {
		rt.writeError(w, r, err)
		return
	}

	entries, err := rt.chat.GetHistory(r.Context(), fileID, limit)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (rt *Router) getFileByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file id is required"})
		return
	}

	view, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 && rt.logger != nil {
		rt.logger.Error("request failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (rt *Router) recordPipeline(result string, duration time.Duration) {
	if rt.metrics != nil {
		rt.metrics.RecordPipelineRun(rt.service, result, duration)
	}
}

func (rt *Router) recordChat(result string, duration time.Duration) {
	if rt.metrics != nil {
		rt.metrics.RecordChatQuery(rt.service, result, duration)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
