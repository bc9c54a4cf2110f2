// Package api serves road network generation over HTTP.
//
// Routes:
//
//	GET    /healthz                     build info
//	POST   /v1/networks                 generate (body: pipeline options JSON)
//	GET    /v1/networks                 list stored networks (?limit=)
//	GET    /v1/networks/{id}            fetch a stored network
//	GET    /v1/networks/{id}/topology   DOT or SVG topology (?format=dot|svg)
//	DELETE /v1/networks/{id}            delete a stored network
//
// Errors are JSON objects with a machine-readable code taken from pkg/errors.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roadnet/pkg/buildinfo"
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/export"
	"github.com/matzehuels/roadnet/pkg/observability"
	"github.com/matzehuels/roadnet/pkg/pipeline"
	"github.com/matzehuels/roadnet/pkg/store"
)

const (
	maxBodyBytes     = 1 << 20
	defaultListLimit = 20
	maxListLimit     = 200
	requestTimeout   = 30 * time.Second
)

// Handler serves the API.
type Handler struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewHandler creates a handler. A nil logger discards output.
func NewHandler(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{runner: runner, store: st, logger: logger}
}

// Router returns the chi router with all routes and middleware mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1/networks", func(r chi.Router) {
		r.Post("/", h.handleCreateNetwork)
		r.Get("/", h.handleListNetworks)
		r.Get("/{id}", h.handleGetNetwork)
		r.Get("/{id}/topology", h.handleGetTopology)
		r.Delete("/{id}", h.handleDeleteNetwork)
	})
	return r
}

type createResponse struct {
	Cached bool `json:"cached"`
	*pipeline.Record
}

type listResponse struct {
	Networks []*pipeline.Record `json:"networks"`
	Limit    int                `json:"limit"`
}

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (h *Handler) handleCreateNetwork(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && !stderrors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body",
			map[string]any{"error": err.Error()})
		return
	}

	res, cached, err := h.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	rec := res.Record()
	if err := h.store.Save(r.Context(), rec); err != nil {
		h.writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if cached {
		status = http.StatusOK
	}
	w.Header().Set("Location", "/v1/networks/"+rec.ID)
	h.writeJSON(w, status, createResponse{Cached: cached, Record: rec})
}

func (h *Handler) handleListNetworks(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r.URL.Query().Get("limit"), defaultListLimit, maxListLimit)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid limit",
			map[string]any{"error": err.Error()})
		return
	}
	recs, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if recs == nil {
		recs = []*pipeline.Record{}
	}
	h.writeJSON(w, http.StatusOK, listResponse{Networks: recs, Limit: limit})
}

func (h *Handler) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleGetTopology(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = export.FormatSVG
	}
	if err := export.ValidateFormat(format); err != nil {
		h.writeDomainError(w, err)
		return
	}

	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	res, err := rec.Result()
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	data, err := h.runner.Render(r.Context(), res, format)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	contentType := "text/vnd.graphviz; charset=utf-8"
	if format == export.FormatSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleDeleteNetwork(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// observe reports each request to the HTTP hooks and the debug log.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	h.writeJSON(w, status, errorResponse{Code: code, Message: message, Details: details})
}

// writeDomainError maps a pkg/errors code to an HTTP status.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	message := errors.UserMessage(err)
	if status >= http.StatusInternalServerError && errors.GetCode(err) == "" {
		message = "internal error"
	}
	h.writeError(w, status, string(code), message, nil)
}

func statusFor(err error) int {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.IsCallerError(err):
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNoBoundary, errors.ErrCodePlacementExhausted:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func parseLimitParam(raw string, def, maxLimit int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxLimit {
		return 0, errors.New(errors.ErrCodeInvalidInput, "limit must be within [1, %d]", maxLimit)
	}
	return n, nil
}
