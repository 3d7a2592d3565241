// Package api exposes the HTTP interface for the cocktail index service.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/bevtrends/bevtrends/internal/catalog"
	"github.com/bevtrends/bevtrends/internal/cocktail"
	"github.com/bevtrends/bevtrends/internal/config"
	"github.com/bevtrends/bevtrends/internal/metrics"
	"github.com/bevtrends/bevtrends/internal/search"
	"github.com/bevtrends/bevtrends/internal/trends"
)

// CocktailService is the catalog surface the handlers need.
type CocktailService interface {
	Search(ctx context.Context, params search.Params) []cocktail.Record
	Get(ctx context.Context, id string) (cocktail.Record, error)
	Reindex(ctx context.Context) (catalog.Summary, error)
	Stats(ctx context.Context) catalog.Stats
}

// Server wires HTTP handlers to the catalog and trends services.
type Server struct {
	router    chi.Router
	cocktails CocktailService
	trends    trends.Repository
	cfg       config.Config
	logger    *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(cocktails CocktailService, trendRepo trends.Repository, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cocktails: cocktails,
		trends:    trendRepo,
		cfg:       cfg,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metrics.Middleware)

	timeout := timeoutMiddleware(cfg.RequestTimeout())

	r.With(timeout).Get("/healthz", s.healthz)
	r.With(timeout).Get("/readyz", s.readyz)
	r.With(timeout).Method(http.MethodGet, "/metrics", metrics.Handler())

	// The mobile client historically hit both the bare and the /api
	// prefixed paths; serve both.
	for _, prefix := range []string{"", "/api"} {
		r.Route(prefix+"/iba", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(timeout)
				r.Get("/cocktails", s.listCocktails)
				r.Get("/cocktails/{id}", s.getCocktail)
				r.Get("/stats", s.getStats)
				r.Get("/mock", s.getMock)
			})
			// A full crawl legitimately outlasts the request budget, and
			// canceling it mid-flight would drop the work already done;
			// the catalog's single-flight guard bounds concurrent runs
			// instead of a deadline.
			r.With(reindexKeyMiddleware(cfg.Auth.ReindexKey)).
				Get("/reindex", s.reindex)
		})
		r.With(timeout).Get(prefix+"/trending/near-me", s.nearMe)
	}

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) listCocktails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		query = q.Get("search")
	}
	params := search.Params{
		Query:   query,
		Spirits: search.ParseList(q.Get("spirit")),
		Tags:    search.ParseList(q.Get("tags")),
		Limit:   intParam(q.Get("limit")),
		Offset:  intParam(q.Get("offset")),
	}
	setNoStore(w)
	writeJSON(w, http.StatusOK, s.cocktails.Search(r.Context(), params))
}

func (s *Server) getCocktail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.cocktails.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	setNoStore(w)
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) reindex(w http.ResponseWriter, r *http.Request) {
	summary, err := s.cocktails.Reindex(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrReindexRunning) {
			writeError(w, http.StatusConflict, "Reindex already running")
			return
		}
		s.logger.Error("reindex failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Reindex failed")
		return
	}
	setNoStore(w)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cocktails.Stats(r.Context()))
}

func (s *Server) getMock(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.MockSet())
}

func (s *Server) nearMe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := trends.Query{
		Type: q.Get("type"),
		Tag:  q.Get("tag"),
		Sort: q.Get("sort"),
	}
	// An unparsable distance is ignored rather than rejected.
	if raw := q.Get("maxDistance"); raw != "" {
		if md, err := strconv.ParseFloat(raw, 64); err == nil {
			query.MaxDistance = md
		}
	}
	drinks, err := s.trends.NearMe(r.Context(), query)
	if err != nil {
		s.logger.Error("near-me lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch near-me trends")
		return
	}
	writeJSON(w, http.StatusOK, drinks)
}

func intParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func setNoStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
