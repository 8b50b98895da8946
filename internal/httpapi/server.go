// Package httpapi serves the record CRUD endpoints, probes and Prometheus metrics.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Proton-105/warung-bot/internal/lifecycle"
	"github.com/Proton-105/warung-bot/internal/middleware"
	"github.com/Proton-105/warung-bot/internal/repository"
	"github.com/Proton-105/warung-bot/pkg/logger"
)

const maxBodyBytes = 1 << 20

// Store is the part of the record store the API exposes.
type Store interface {
	repository.ProductRepository
	repository.BankAccountRepository
}

// Deps configures the HTTP handler.
type Deps struct {
	Store  Store
	Probes lifecycle.HealthChecker
	// Token guards /api/. An empty token leaves the API unmounted.
	Token   string
	Metrics http.Handler
	Log     *slog.Logger
}

type api struct {
	store    Store
	validate *validator.Validate
	log      *slog.Logger
}

// New builds the HTTP handler.
func New(deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)
	mux.HandleFunc("GET /healthz", probe(deps.Probes, lifecycle.HealthChecker.Liveness))
	mux.HandleFunc("GET /readyz", probe(deps.Probes, lifecycle.HealthChecker.Readiness))

	if deps.Token != "" && deps.Store != nil {
		a := &api{store: deps.Store, validate: validator.New(), log: log}

		apiMux := http.NewServeMux()
		apiMux.HandleFunc("GET /api/products", a.listProducts)
		apiMux.HandleFunc("POST /api/products", a.createProduct)
		apiMux.HandleFunc("GET /api/products/{id}", a.getProduct)
		apiMux.HandleFunc("PUT /api/products/{id}", a.updateProduct)
		apiMux.HandleFunc("DELETE /api/products/{id}", a.deleteProduct)

		apiMux.HandleFunc("GET /api/bank-accounts", a.listBankAccounts)
		apiMux.HandleFunc("POST /api/bank-accounts", a.createBankAccount)
		apiMux.HandleFunc("GET /api/bank-accounts/{id}", a.getBankAccount)
		apiMux.HandleFunc("PUT /api/bank-accounts/{id}", a.updateBankAccount)
		apiMux.HandleFunc("DELETE /api/bank-accounts/{id}", a.deleteBankAccount)
		apiMux.HandleFunc("POST /api/bank-accounts/{id}/toggle", a.toggleBankAccount)

		mux.Handle("/api/", bearerAuth(deps.Token, apiMux))
	} else {
		log.Warn("server.api_token not set, CRUD API disabled")
	}

	return logger.Middleware(middleware.HTTPLogging(log)(mux))
}

func probe(probes lifecycle.HealthChecker, check func(lifecycle.HealthChecker, context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if probes != nil {
			if err := check(probes, r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func bearerAuth(token string, next http.Handler) http.Handler {
	want := []byte("Bearer " + token)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := []byte(r.Header.Get("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if err := a.validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return false
	}

	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return strings.Join(msgs, "; ")
}

// storeError maps repository errors to HTTP responses.
func (a *api) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	a.log.ErrorContext(r.Context(), "api store error",
		slog.String("path", r.URL.Path),
		slog.String("correlation_id", logger.CorrelationIDFromContext(r.Context())),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
