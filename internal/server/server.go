package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/lp-bulk/internal/config"
	"github.com/iwvelando/lp-bulk/internal/row"
	"github.com/iwvelando/lp-bulk/pkg/constants"
	"github.com/iwvelando/lp-bulk/pkg/output"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger            *zap.Logger
	maxUploadSize     int64
	defaultMultiplier int
	version           string
}

// NewHandler constructs the HTTP handler that serves the web calculator and
// the scaling API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, defaultMultiplier int, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	if defaultMultiplier < constants.MinMultiplier {
		defaultMultiplier = constants.DefaultMultiplier
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:            logger,
		maxUploadSize:     maxUploadSize,
		defaultMultiplier: defaultMultiplier,
		version:           trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Single offer, driven by the calculator input on the page
	r.Post("/api/scale", h.handleScale)

	// Whole offer table upload
	r.Post("/api/table", h.handleTable)

	r.Get("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

type scaleRequest struct {
	Offer      row.Raw     `json:"offer"`
	Multiplier interface{} `json:"multiplier"`
}

type scaleResponse struct {
	State string    `json:"state"`
	View  *row.View `json:"view,omitempty"`
	Error string    `json:"error,omitempty"`
}

type tableResponse struct {
	Multiplier int             `json:"multiplier"`
	Offers     []offerResponse `json:"offers"`
	CSV        string          `json:"csv"`
	Warnings   []string        `json:"warnings,omitempty"`
	Duration   string          `json:"duration"`
}

type offerResponse struct {
	Corporation string    `json:"corporation"`
	Item        string    `json:"item"`
	State       string    `json:"state"`
	View        *row.View `json:"view,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func (h *handler) handleScale(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScale"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	controller, err := row.NewController(h.logger, req.Offer, nil)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("malformed offer: %v", err), op)
		return
	}

	view, state, err := controller.Evaluate(coerceInput(req.Multiplier))
	if err != nil {
		h.logger.Warn("offer could not be scaled",
			zap.String("op", op),
			zap.String("item", req.Offer.Item),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, scaleResponse{
			State: row.Collapsed.String(),
			Error: err.Error(),
		})
		return
	}

	resp := scaleResponse{State: state.String()}
	if state == row.Expanded {
		resp.View = &view
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleTable(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTable"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing offer table file", op)
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

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read offer table: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	input := strings.TrimSpace(r.FormValue("multiplier"))
	if input == "" {
		multiplier := cfg.Multiplier
		if multiplier == 0 {
			multiplier = h.defaultMultiplier
		}
		input = strconv.Itoa(multiplier)
	}

	table, err := row.Setup(r.Context(), h.logger, cfg.RawOffers(), nil)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, fmt.Sprintf("failed to capture offers: %v", err), op)
		return
	}

	outcomes, err := table.EvaluateAll(r.Context(), input)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, fmt.Sprintf("failed to scale offers: %v", err), op)
		return
	}

	csvData, err := output.CsvString(outcomes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	k, _ := row.ParseMultiplier(input)
	elapsed := time.Since(start)
	response := tableResponse{
		Multiplier: k,
		Offers:     buildOffers(outcomes),
		CSV:        csvData,
		Warnings:   cfg.ValidateConfiguration(),
		Duration:   elapsed.String(),
	}

	h.logger.Info("offer table scaled",
		zap.String("op", op),
		zap.Int("offers", len(response.Offers)),
		zap.Int("failures", len(table.Failures)),
		zap.Int("multiplier", k),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func buildOffers(outcomes []row.Outcome) []offerResponse {
	offers := make([]offerResponse, 0, len(outcomes))
	for _, outcome := range outcomes {
		offer := offerResponse{
			Corporation: outcome.Raw.Corporation,
			Item:        outcome.Raw.Item,
			State:       outcome.State.String(),
		}
		if outcome.State == row.Expanded {
			view := outcome.View
			offer.View = &view
		}
		if outcome.Err != nil {
			offer.Error = outcome.Err.Error()
		}
		offers = append(offers, offer)
	}
	return offers
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// coerceInput turns a JSON multiplier value into the text the calculator
// input would hold.
func coerceInput(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}
