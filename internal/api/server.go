package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"cvsearch/internal/batch"
	"cvsearch/internal/collection"
	"cvsearch/internal/logger"
	"cvsearch/internal/metrics"
	"cvsearch/internal/models"
	"cvsearch/internal/search"
)

const notFoundMessage = "No résumé matched this keyword."

type Searcher interface {
	Run(ctx context.Context, keyword string) (search.Response, error)
}

type BatchRunner interface {
	Run(ctx context.Context) (batch.Report, error)
}

type DocumentStore interface {
	List() ([]models.Document, error)
	Save(name string, src io.Reader) (collection.Stored, error)
	Open(name string) (*os.File, os.FileInfo, error)
}

type Deps struct {
	Store          DocumentStore
	Searcher       Searcher
	Batch          BatchRunner
	Log            *zap.Logger
	MaxUploadBytes int64
}

type Server struct {
	store     DocumentStore
	searcher  Searcher
	batch     BatchRunner
	log       *zap.Logger
	maxUpload int64
}

func NewServer(d Deps) *Server {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 32 << 20
	}
	return &Server{
		store:     d.Store,
		searcher:  d.Searcher,
		batch:     d.Batch,
		log:       d.Log,
		maxUpload: d.MaxUploadBytes,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(s.withLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/search", s.handleSearch)
	r.Post("/search", s.handleSearch)

	r.Get("/documents", s.handleListDocuments)
	r.Post("/documents", s.handleUpload)
	r.Get("/documents/{filename}", s.handleDownload)

	r.Post("/batch", s.handleBatch)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	})
	return c.Handler(r)
}

func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.log.With(
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type searchRequest struct {
	Keyword string `json:"keyword"`
}

type searchResponse struct {
	RunID    string                `json:"run_id"`
	Keyword  string                `json:"keyword"`
	Variants []string              `json:"variants"`
	Scanned  int                   `json:"scanned"`
	Count    int                   `json:"count"`
	Results  []models.ScoredResult `json:"results"`
	Message  string                `json:"message,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if r.Method == http.MethodPost {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		keyword = req.Keyword
	}

	resp, err := s.searcher.Run(r.Context(), keyword)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		logger.FromContext(r.Context()).Error("search failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	out := searchResponse{
		RunID:    resp.RunID,
		Keyword:  resp.Keyword,
		Variants: resp.Variants,
		Scanned:  resp.Scanned,
		Count:    len(resp.Results),
		Results:  resp.Results,
	}
	if out.Results == nil {
		out.Results = []models.ScoredResult{}
	}
	if out.Count == 0 {
		out.Message = notFoundMessage
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List()
	if err != nil {
		logger.FromContext(r.Context()).Error("list documents failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs, "count": len(docs)})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		if single, ok := firstSingleFile(r.MultipartForm.File); ok {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	log := logger.FromContext(r.Context())
	uploaded := make([]collection.Stored, 0, len(files))
	rejected := make([]string, 0)
	for _, fh := range files {
		stored, err := s.saveUploadedFile(fh)
		switch {
		case errors.Is(err, collection.ErrUnsupportedType), errors.Is(err, collection.ErrInvalidName):
			rejected = append(rejected, fh.Filename)
			continue
		case err != nil:
			log.Error("store upload failed", zap.String("file", fh.Filename), zap.Error(err))
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		log.Info("document uploaded", zap.String("file", stored.Filename), zap.Int64("size", stored.Size))
		uploaded = append(uploaded, stored)
	}
	if len(uploaded) == 0 {
		writeErr(w, http.StatusUnsupportedMediaType, fmt.Errorf("%w: no supported files provided", collection.ErrUnsupportedType))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"uploaded": uploaded, "rejected": rejected})
}

func (s *Server) saveUploadedFile(fh *multipart.FileHeader) (collection.Stored, error) {
	src, err := fh.Open()
	if err != nil {
		return collection.Stored{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return s.store.Save(fh.Filename, src)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	f, info, err := s.store.Open(name)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) || errors.Is(err, collection.ErrInvalidName) {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name()))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		logger.FromContext(r.Context()).Warn("download interrupted", zap.String("file", info.Name()), zap.Error(err))
	}
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	rep, err := s.batch.Run(r.Context())
	if errors.Is(err, batch.ErrAlreadyRunning) {
		writeErr(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Error("batch copy failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if rep.Matched == nil {
		rep.Matched = []string{}
	}
	writeJSON(w, http.StatusOK, rep)
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "CV-API-4000"

	switch {
	case status >= 500:
		raw := ""
		if err != nil {
			raw = strings.ToLower(err.Error())
		}
		switch {
		case strings.Contains(raw, "read collection dir"):
			return apiError{
				Code:    "CV-FS-5001",
				Message: "Résumé folder is unavailable. Check the collection directory and retry.",
			}
		case strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "CV-WF-5002",
				Message: "Workflow service is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "CV-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "CV-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "CV-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusMethodNotAllowed:
		code = "CV-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusConflict:
		code = "CV-API-4009"
		msg = "A batch copy is already running. Retry when it finishes."
	case status == http.StatusRequestEntityTooLarge:
		code = "CV-API-4013"
		msg = "Upload is larger than the configured limit."
	case status == http.StatusUnsupportedMediaType:
		code = "CV-API-4015"
		msg = "Only PDF, DOCX, PNG and JPEG files are accepted."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case errors.Is(err, search.ErrEmptyQuery):
			msg = "Type a keyword to search."
		case errors.Is(err, collection.ErrNotFound):
			msg = "Document not found in the collection."
		case strings.Contains(err.Error(), "no files provided"):
			msg = "No files were provided."
		case strings.Contains(err.Error(), "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}
