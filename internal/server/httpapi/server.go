// Package httpapi exposes the product service over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/coursework/internal/logging"
	"github.com/dmitrijs2005/coursework/internal/server/auth"
	"github.com/dmitrijs2005/coursework/internal/server/models"
	"github.com/dmitrijs2005/coursework/internal/server/services"
)

// ShutdownTimeout bounds the graceful shutdown once the context is done.
const ShutdownTimeout = 5 * time.Second

type UserService interface {
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Authenticate(token string) (*auth.Principal, error)
}

type ProductService interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Add(ctx context.Context, name string, description *string, price float64) (*models.Product, error)
}

type Server struct {
	address  string
	logger   logging.Logger
	users    UserService
	products ProductService
	registry *prometheus.Registry
	handler  http.Handler
}

func NewServer(a string, l logging.Logger, us UserService, ps ProductService) *Server {
	s := &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		products: ps,
		registry: prometheus.NewRegistry(),
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s.handler = s.routes(newHTTPMetrics(s.registry))
	return s
}

func (s *Server) routes(m *httpMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.logger), m.middleware)

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Get("/products", s.listProducts)
		r.Post("/products", s.addProduct)
		r.Get("/products/{id}", s.getProduct)
	})

	return r
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
