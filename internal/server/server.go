// Package server is a small chi-routed HTTP surface over the
// signingrequest codec — decoding, building, and resolving requests over
// the wire. It is not a node RPC server; no transaction is ever broadcast
// or fetched from a chain here.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey int

const requestIDKey contextKey = 0

// requestID generates a correlation id with google/uuid and stashes it on
// the request context, one layer below chi's own RequestID (which uses a
// short counter, not a globally unique id a caller could log and match
// against this server's logs).
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Server wraps the chi router and the settings its handlers need.
type Server struct {
	router         chi.Router
	inflateCapByte int64
}

// New builds a Server with routes registered and ready to serve.
func New(inflateCapBytes int64) *Server {
	s := &Server{inflateCapByte: inflateCapBytes}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/v1/esr", func(r chi.Router) {
		r.Post("/decode", s.handleDecode)
		r.Post("/encode", s.handleEncode)
		r.Post("/resolve", s.handleResolve)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs method, path, status, duration, and the request's
// correlation id, mirroring the teacher's walletserver/middleware.Logger
// but keyed to this module's logrus setup.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"request_id": requestIDFromContext(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	})
}
