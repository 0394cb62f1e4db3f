// Package server exposes the VA loan calculators over an HTTP JSON API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/va-loan-calculator/internal/config"
	"github.com/iwvelando/va-loan-calculator/internal/quote"
	"github.com/iwvelando/va-loan-calculator/pkg/affordability"
	"github.com/iwvelando/va-loan-calculator/pkg/closingcost"
	"github.com/iwvelando/va-loan-calculator/pkg/constants"
	"github.com/iwvelando/va-loan-calculator/pkg/dti"
	"github.com/iwvelando/va-loan-calculator/pkg/fundingfee"
	"github.com/iwvelando/va-loan-calculator/pkg/mortgage"
	"github.com/iwvelando/va-loan-calculator/pkg/output"
	"github.com/iwvelando/va-loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	schedules   *mortgage.ScheduleGenerator
}

// NewHandler constructs the HTTP handler that serves the calculator API. A nil
// cfg uses DefaultConfig.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxBodySize := cfg.BodySizeBytes()
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		schedules:   mortgage.NewScheduleGenerator(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)

		r.Route("/mortgage", func(r chi.Router) {
			r.Post("/payment", h.handlePayment)
			r.Post("/schedule", h.handleSchedule)
		})

		r.Post("/funding-fee", h.handleFundingFee)

		r.Route("/dti", func(r chi.Router) {
			r.Post("/", h.handleDTI)
			r.Get("/bands", h.handleDTIBands)
		})

		r.Route("/closing-costs", func(r chi.Router) {
			r.Post("/", h.handleClosingCosts)
			r.Get("/schedule", h.handleClosingCostSchedule)
		})

		r.Post("/affordability", h.handleAffordability)
		r.Post("/validate", h.handleValidate)
		r.Post("/quote", h.handleQuote)
	})

	return r
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			h.logger.Info("request served",
				zap.String("op", "server.requestLogger"),
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	var in mortgage.LoanInputs
	if !h.decode(w, r, &in, "server.handlePayment") {
		return
	}
	h.writeJSON(w, http.StatusOK, mortgage.Calculate(in))
}

type scheduleResponse struct {
	Payments []mortgage.Payment      `json:"payments"`
	Years    []mortgage.YearSummary  `json:"years"`
	Errors   []validation.FieldError `json:"errors,omitempty"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req mortgage.ScheduleRequest
	if !h.decode(w, r, &req, "server.handleSchedule") {
		return
	}

	errs := validation.ValidateFields(map[string]float64{
		validation.FieldLoanAmount:   req.LoanAmount,
		validation.FieldInterestRate: req.InterestRate,
		validation.FieldLoanTerm:     float64(req.LoanTermYears),
	})
	if errs != nil {
		h.writeJSON(w, http.StatusOK, scheduleResponse{
			Payments: []mortgage.Payment{},
			Years:    []mortgage.YearSummary{},
			Errors:   errs,
		})
		return
	}

	payments := h.schedules.Generate(req)
	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Payments: payments,
		Years:    mortgage.SummarizeByYear(payments),
	})
}

func (h *handler) handleFundingFee(w http.ResponseWriter, r *http.Request) {
	var in fundingfee.Inputs
	if !h.decode(w, r, &in, "server.handleFundingFee") {
		return
	}
	h.writeJSON(w, http.StatusOK, fundingfee.Calculate(in))
}

func (h *handler) handleDTI(w http.ResponseWriter, r *http.Request) {
	var in dti.Inputs
	if !h.decode(w, r, &in, "server.handleDTI") {
		return
	}
	h.writeJSON(w, http.StatusOK, dti.Calculate(in))
}

type bandResponse struct {
	dti.RatingBand
	Style dti.Style `json:"style"`
}

func (h *handler) handleDTIBands(w http.ResponseWriter, _ *http.Request) {
	bands := dti.RatingBands()
	resp := make([]bandResponse, 0, len(bands))
	for _, b := range bands {
		resp = append(resp, bandResponse{RatingBand: b, Style: dti.StyleFor(b.Color)})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type closingCostRequest struct {
	PurchasePrice float64 `json:"purchasePrice"`
	LoanAmount    float64 `json:"loanAmount"`
}

func (h *handler) handleClosingCosts(w http.ResponseWriter, r *http.Request) {
	var req closingCostRequest
	if !h.decode(w, r, &req, "server.handleClosingCosts") {
		return
	}
	h.writeJSON(w, http.StatusOK, closingcost.CalculateEstimatedClosingCosts(req.PurchasePrice, req.LoanAmount))
}

func (h *handler) handleClosingCostSchedule(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, closingcost.DefaultSchedule())
}

type affordabilityResponse struct {
	affordability.Result
	Check affordability.Check `json:"check"`
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	var in affordability.Inputs
	if !h.decode(w, r, &in, "server.handleAffordability") {
		return
	}
	if in.TargetBackEndRatio == 0 {
		in.TargetBackEndRatio = constants.DefaultTargetBackEndRatio
	}

	res := affordability.Solve(in)
	h.writeJSON(w, http.StatusOK, affordabilityResponse{
		Result: res,
		Check:  affordability.CheckAffordability(in, res.MaxHomePrice),
	})
}

type validateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors"`
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var values map[string]float64
	if !h.decode(w, r, &values, "server.handleValidate") {
		return
	}

	errs := validation.ValidateFields(values)
	if errs == nil {
		errs = []validation.FieldError{}
	}
	h.writeJSON(w, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
}

type quoteResponse struct {
	Quotes   []quote.Quote `json:"quotes"`
	CSV      string        `json:"csv"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration string        `json:"duration"`
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleQuote"
	start := time.Now()

	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body), "json")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results, err := quote.GetQuotes(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to compute quotes: %v", err), op)
		return
	}

	csvOut, err := output.CsvString(results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("quotes computed",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, quoteResponse{
		Quotes:   results,
		CSV:      csvOut,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

// readBody reads the whole request body within the size limit.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.bodyError(w, err, op)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "request body is empty", op)
		return nil, false
	}
	return body, true
}

// decode reads a JSON body into v, rejecting unknown fields and trailing data.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	body, ok := h.readBody(w, r, op)
	if !ok {
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	if dec.More() {
		h.respondErrorWithOp(w, http.StatusBadRequest, "failed to decode request: unexpected data after JSON body", op)
		return false
	}
	return true
}

func (h *handler) bodyError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status so an encoding
// failure can still be reported as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
