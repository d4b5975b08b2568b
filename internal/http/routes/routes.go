package routes

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/clashclient/cache"
	"github.com/briangreenhill/clashclient/clash"
	appmw "github.com/briangreenhill/clashclient/internal/http/middleware"
	"github.com/briangreenhill/clashclient/lookups"
)

type Server struct {
	Router  *chi.Mux
	Lookups *lookups.Registry
	Cache   cache.Inspector
	Remover cache.Remover
}

type ServerOptions struct {
	Lookups    *lookups.Registry
	Cache      *cache.Store // optional; debug routes report an empty cache when nil
	Logger     zerolog.Logger
	AdminToken string // guards the /debug routes when set
}

// statusReporter is implemented by clash responses.
type statusReporter interface {
	Status() int
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Lookups: opts.Lookups}
	if opts.Cache != nil {
		s.Cache, s.Remover = opts.Cache, opts.Cache
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("writing health check response")
		}
	})

	r.Get("/v1/search", s.handleSearch)
	r.Get("/v1/{lookup}/{arg}", s.handleLookup)

	r.Group(func(pr chi.Router) {
		pr.Use(appmw.RequireAdminToken(opts.AdminToken))
		pr.Get("/debug/cache", s.handleCacheInfo)
		pr.Get("/debug/cache/size", s.handleCacheSize)
		pr.Delete("/debug/cache/*", s.handleCacheRemove)
	})

	return s
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, "search", r.URL.Query().Get("name"))
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	arg := chi.URLParam(r, "arg")
	if unescaped, err := url.PathUnescape(arg); err == nil {
		arg = unescaped
	}
	s.run(w, r, chi.URLParam(r, "lookup"), arg)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, name, arg string) {
	l, ok := s.Lookups.Get(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown lookup: "+name)
		return
	}

	result, err := l.Run(r.Context(), arg)
	switch {
	case clash.IsValidationError(err):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("lookup", name).Msg("lookup failed")
		writeError(w, r, http.StatusInternalServerError, "lookup failed")
		return
	}

	status := http.StatusOK
	if sr, ok := result.(statusReporter); ok {
		switch code := sr.Status(); {
		case code == clash.StatusNotSet:
			status = http.StatusBadGateway
		case code >= 200 && code < 600:
			status = code
		}
	}
	writeJSON(w, r, status, result)
}

func (s *Server) handleCacheInfo(w http.ResponseWriter, r *http.Request) {
	items := []cache.CachedItem{}
	if s.Cache != nil {
		if info := s.Cache.ItemInfo(r.URL.Query()["name"]...); info != nil {
			items = info
		}
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleCacheSize(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		MaximumSize int64 `json:"maximumSize"`
		Items       int   `json:"items"`
	}{}
	if s.Cache != nil {
		resp.MaximumSize = s.Cache.MaximumSize()
		resp.Items = s.Cache.Len()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCacheRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSpace(name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "cache name required")
		return
	}
	if s.Remover != nil {
		s.Remover.Remove(name)
	}
	w.WriteHeader(http.StatusNoContent)
}
