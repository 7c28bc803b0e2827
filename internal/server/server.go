package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/calculator"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/config"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/history"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/optimizer"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/enrichment"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/optimization"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/output"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/parse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Error kinds reported to API clients.
const (
	kindParse       = "parse"
	kindOrdering    = "ordering"
	kindDegenerate  = "degenerate"
	kindConsistency = "consistency"
	kindMode        = "mode"
	kindRequest     = "request"
	kindEncoding    = "encoding"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	optimizer     optimizer.Options
	history       *history.Log
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculation API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		optimizer:     cfg.Optimizer.Options(),
		history:       history.New(cfg.HistoryLimit),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/modes", h.handleModes)
		r.Post("/calculate/{mode}", h.handleCalculate)
		r.Post("/scenarios", h.handleScenarios)
		r.Get("/optimize/curve", h.handleCurve)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.handleHistory)
			r.Delete("/", h.handleClearHistory)
			r.Get("/{id}", h.handleHistoryEntry)
		})
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

// Run serves the API on cfg.Address until ctx is cancelled, then shuts the
// server down gracefully.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      NewHandler(logger, cfg, version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down HTTP server", zap.String("op", "server.Run"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Debug("HTTP request",
			zap.String("op", "server.request"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type calculateRequest struct {
	Inputs map[string]interface{} `json:"inputs"`
}

type calculateResponse struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Title     string       `json:"title"`
	Result    modes.Result `json:"result"`
	Rows      []output.Row `json:"rows"`
	Notes     []string     `json:"notes,omitempty"`
	Clipboard string       `json:"clipboard"`
}

type scenarioOutcome struct {
	Name   string        `json:"name"`
	Mode   modes.ID      `json:"mode,omitempty"`
	Result *modes.Result `json:"result,omitempty"`
	Rows   []output.Row  `json:"rows,omitempty"`
	Notes  []string      `json:"notes,omitempty"`
	Error  string        `json:"error,omitempty"`
	Kind   string        `json:"kind,omitempty"`
}

type scenariosResponse struct {
	Outcomes []scenarioOutcome `json:"outcomes"`
	CSV      string            `json:"csv"`
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
}

type curveResponse struct {
	Points  []optimization.CurvePoint `json:"points"`
	Optimum optimization.Summary      `json:"optimum"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleModes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, modes.All())
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	id, err := modes.Canonical(chi.URLParam(r, "mode"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error(), kindMode, op)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var req calculateRequest
	if err := decoder.Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), kindRequest, op)
		return
	}

	raw, err := stringInputs(req.Inputs)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), kindParse, op)
		return
	}

	result, err := modes.Solve(id, raw, h.optimizer)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), errorKind(err), op)
		return
	}

	// Only results that encode are recorded.
	if _, err := encodeJSON(result); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), kindEncoding, op)
		return
	}

	entry := h.history.Add(result)
	h.logger.Info("calculation completed",
		zap.String("op", op),
		zap.String("mode", string(id)),
		zap.String("id", entry.ID),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Title:     output.Heading(id),
		Result:    result,
		Rows:      output.Rows(result),
		Notes:     output.Notes(result),
		Clipboard: output.ClipboardText(result),
	})
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), kindRequest, op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), kindRequest, op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing scenario file", kindRequest, op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	cfg, err := config.LoadConfigurationFromReader(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), kindRequest, op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), kindRequest, op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	outcomes, err := calculator.Run(h.logger, *cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), kindRequest, op)
		return
	}

	csvText, err := output.CsvString(outcomes)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), kindRequest, op)
		return
	}

	response := scenariosResponse{
		Outcomes: make([]scenarioOutcome, 0, len(outcomes)),
		CSV:      csvText,
		Warnings: warnings,
	}
	for _, o := range outcomes {
		item := scenarioOutcome{Name: o.Name, Mode: o.Mode}
		if o.Err != nil {
			item.Error = o.Err.Error()
			item.Kind = errorKind(o.Err)
		} else {
			result := o.Result
			item.Result = &result
			item.Rows = output.Rows(result)
			item.Notes = output.Notes(result)
		}
		response.Outcomes = append(response.Outcomes, item)
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()
	h.logger.Info("scenarios computed",
		zap.String("op", op),
		zap.Int("scenarios", len(outcomes)),
		zap.Int("failed", len(calculator.Failed(outcomes))),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCurve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCurve"

	query := r.URL.Query()
	values := make(map[string]float64)
	fields := []struct {
		name string
		kind parse.Kind
	}{
		{modes.InputProductAssay, parse.KindAssay},
		{modes.InputFeedAssay, parse.KindAssay},
		{modes.InputFeedPrice, parse.KindScalar},
		{modes.InputSWUPrice, parse.KindScalar},
	}
	for _, f := range fields {
		v, err := parse.Value(f.kind, query.Get(f.name))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, parse.WithField(err, f.name).Error(), kindParse, op)
			return
		}
		values[f.name] = v
	}

	points := constants.DefaultCurvePoints
	if raw := strings.TrimSpace(query.Get("points")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid points %q", raw), kindRequest, op)
			return
		}
		points = n
	}

	rates := enrichment.CostRates{FeedPrice: values[modes.InputFeedPrice], SWUPrice: values[modes.InputSWUPrice]}
	productAssay, feedAssay := values[modes.InputProductAssay], values[modes.InputFeedAssay]

	curve, err := optimizer.SampleCurve(productAssay, feedAssay, rates, points)
	if err != nil {
		kind := errorKind(err)
		if kind == "" {
			kind = kindRequest
		}
		h.respondError(w, http.StatusBadRequest, err.Error(), kind, op)
		return
	}
	optimum, err := optimizer.FindOptimumTails(productAssay, feedAssay, rates, h.optimizer)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), errorKind(err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, curveResponse{Points: curve, Optimum: optimum})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.history.Entries())
}

func (h *handler) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.history.Get(chi.URLParam(r, "id"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "history entry not found", kindRequest, "server.handleHistoryEntry")
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	h.history.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// stringInputs converts JSON input values to the text the parsers expect.
// Numbers are passed through in their original spelling.
func stringInputs(inputs map[string]interface{}) (map[string]string, error) {
	raw := make(map[string]string, len(inputs))
	for name, value := range inputs {
		switch v := value.(type) {
		case string:
			raw[name] = v
		case json.Number:
			raw[name] = v.String()
		case nil:
			raw[name] = ""
		default:
			return nil, fmt.Errorf("%s: expected a string or number, got %T", name, value)
		}
	}
	return raw, nil
}

// errorKind classifies err for API clients. It returns "" for errors outside
// the calculation error taxonomy.
func errorKind(err error) string {
	switch {
	case errors.Is(err, parse.ErrParse):
		return kindParse
	case errors.Is(err, enrichment.ErrOrdering):
		return kindOrdering
	case errors.Is(err, enrichment.ErrDegenerate):
		return kindDegenerate
	case errors.Is(err, enrichment.ErrConsistency):
		return kindConsistency
	case errors.Is(err, modes.ErrUnknownMode):
		return kindMode
	default:
		return ""
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, kind, op string) {
	h.logger.Warn("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("kind", kind),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

// writeJSON encodes payload before touching the response, so an encoding
// failure still answers 500 with a JSON error body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := encodeJSON(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = encodeJSON(errorResponse{Error: "failed to encode response", Kind: kindEncoding})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func encodeJSON(payload interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
