// Package web serves the signup form and its JSON API.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"club-signup/internal/common/config"
	"club-signup/internal/common/logger"
	"club-signup/internal/common/observability"
	"club-signup/internal/common/validation"
	"club-signup/internal/docstore"
	"club-signup/internal/form"
)

const maxBodyBytes = 64 << 10

// Config carries the settings the handlers need.
type Config struct {
	Title                string
	ConfirmationImageURL string
	Collection           string
	WriteTimeout         time.Duration
	RequestTimeout       time.Duration
}

// ConfigFrom extracts the handler settings from the service config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Title:                cfg.Form.Title,
		ConfirmationImageURL: cfg.Form.ConfirmationImageURL,
		Collection:           cfg.Store.Collection,
		WriteTimeout:         config.GetDuration(cfg.Store.WriteTimeout),
		RequestTimeout:       config.GetDuration(cfg.Server.RequestTimeout),
	}
}

// Handler owns the injected store and builds one Form per request.
type Handler struct {
	store     docstore.Store
	cfg       Config
	rules     *validation.RuleSet
	logger    logger.Logger
	obs       *observability.Observability
	templates *template.Template
}

func NewHandler(store docstore.Store, cfg Config, log logger.Logger, obs *observability.Observability) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		store:     store,
		cfg:       cfg,
		rules:     validation.DefaultRuleSet(),
		logger:    log,
		obs:       obs,
		templates: tmpl,
	}, nil
}

// Register adds the signup routes to r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Post("/apply", h.handleApply)
	r.Post("/api/validate", h.handleValidate)
	r.Post("/api/applications", h.handleCreateApplication)
	r.Get("/healthz", h.handleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(AssetsFS()))))
}

// Router returns the full HTTP handler including middleware and /metrics.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics)
	if h.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	h.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (h *Handler) newForm() *form.Form {
	return form.New(h.store,
		form.WithConfig(&form.Config{Collection: h.cfg.Collection, WriteTimeout: h.cfg.WriteTimeout}),
		form.WithRuleSet(h.rules),
		form.WithLogger(h.logger),
		form.WithObservability(h.obs),
	)
}
