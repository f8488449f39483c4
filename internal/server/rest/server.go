// Package rest exposes the bread directory over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/bunfight/internal/logging"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
)

const shutdownTimeout = 10 * time.Second

// BreadDirectory is what the handlers need from the service layer.
type BreadDirectory interface {
	ListAll(ctx context.Context) ([]*models.Entry, error)
	Lookup(ctx context.Context, locality string) (string, error)
	Submit(ctx context.Context, locality, term string) (*models.Entry, error)
}

type HTTPServer struct {
	address string
	bread   BreadDirectory
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, bread BreadDirectory) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		bread:   bread,
	}
}

// Router builds the route table.
//
//	GET  /health
//	GET  /bread?locality=<s>
//	POST /bread
//	GET  /bread/entries
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/health", s.Health).Methods(http.MethodGet)
	r.HandleFunc("/bread", s.Lookup).Methods(http.MethodGet)
	r.HandleFunc("/bread", s.Submit).Methods(http.MethodPost)
	r.HandleFunc("/bread/entries", s.ListAll).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
