// Package server provides the HTTP server that hosts the document generation API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/soaringjerry/ec0301/internal/api"
	"github.com/soaringjerry/ec0301/internal/metrics"
	"github.com/soaringjerry/ec0301/internal/middleware"
	"go.uber.org/zap"
)

// Server is a struct that holds the HTTP server and its configuration.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger

	// This context is used to interrupt any action.
	// It must be the parent of gracefulCtx.
	ctx    context.Context
	cancel context.CancelFunc

	// This context is cancelled to request a graceful shutdown.
	gracefulCtx    context.Context
	gracefulCancel context.CancelFunc

	ready     chan struct{}
	readyOnce sync.Once
	addr      net.Addr
}

// StaticConfig holds the static configuration for the server.
type StaticConfig struct {
	ListenHost string `mapstructure:"listen-host"`
	ListenPort int    `mapstructure:"listen-port"`

	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	MaxHeaderBytes int           `mapstructure:"max-header-bytes"`
	MaxBodyBytes   int64         `mapstructure:"max-body-bytes"`

	PaymentDelay time.Duration `mapstructure:"payment-delay"`
	StaticDir    string        `mapstructure:"static-dir"`
	DevFrontend  string        `mapstructure:"dev-frontend-url"`
	CORSOrigins  []string      `mapstructure:"cors-origins"`
	Metrics      bool          `mapstructure:"metrics"`

	Version string `mapstructure:"-"`
	Commit  string `mapstructure:"-"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() StaticConfig {
	return StaticConfig{
		ListenPort:     3000,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		RequestTimeout: 20 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64 KB
		MaxBodyBytes:   50 << 20, // 50 MB, forms embed long question banks
		PaymentDelay:   800 * time.Millisecond,
		CORSOrigins:    []string{"*"},
		Metrics:        true,
	}
}

// New creates a new Server instance from sc.
func New(ctx context.Context, log *zap.Logger, sc StaticConfig) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if sc.ListenPort < 0 || sc.ListenPort > 65535 {
		return nil, fmt.Errorf("invalid listen port %d", sc.ListenPort)
	}
	if sc.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("invalid max body size %d", sc.MaxBodyBytes)
	}

	ctx, cancel := context.WithCancel(ctx)
	gCtx, gCancel := context.WithCancel(ctx)

	s := Server{
		log:    log,
		ctx:    ctx,
		cancel: cancel,

		gracefulCtx:    gCtx,
		gracefulCancel: gCancel,

		ready: make(chan struct{}),
	}

	mux := http.NewServeMux()
	var m *metrics.Metrics
	if sc.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		mux.Handle("GET /metrics", metrics.Handler(reg))
	}

	api.NewRouter(api.Options{
		Logger:       log,
		Metrics:      m,
		PaymentDelay: sc.PaymentDelay,
		Version:      sc.Version,
		Commit:       sc.Commit,
	}).Register(mux)

	// Frontend: static files win over the dev proxy.
	switch {
	case sc.StaticDir != "":
		mux.Handle("GET /", api.SPAHandler(sc.StaticDir))
	case sc.DevFrontend != "":
		u, err := url.Parse(sc.DevFrontend)
		if err != nil || u.Host == "" {
			cancel()
			return nil, fmt.Errorf("invalid dev frontend URL %q", sc.DevFrontend)
		}
		mux.Handle("/", api.DevProxy(u))
	}

	var handler http.Handler = mux
	if sc.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, sc.RequestTimeout, "")
	}
	handler = middleware.MaxBody(sc.MaxBodyBytes)(handler)
	handler = middleware.NoStore(handler)
	handler = middleware.SecureHeaders(handler)
	handler = middleware.CORS(sc.CORSOrigins)(handler)
	handler = middleware.LocaleMiddleware(handler)
	handler = middleware.Recover(log)(handler)
	handler = middleware.RequestLogger(log)(handler)

	s.httpServer = &http.Server{
		Addr:           net.JoinHostPort(sc.ListenHost, fmt.Sprint(sc.ListenPort)),
		ReadTimeout:    sc.ReadTimeout,
		WriteTimeout:   sc.WriteTimeout,
		Handler:        handler,
		MaxHeaderBytes: sc.MaxHeaderBytes,
	}

	return &s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Ready is closed once Run is listening or has failed to.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the listening address. It is nil until Ready is closed.
func (s *Server) Addr() net.Addr {
	<-s.ready
	return s.addr
}

func (s *Server) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	// already asked to quit?
	select {
	case <-s.gracefulCtx.Done():
		s.markReady()
		return errors.New("server is already shutting down")
	default:
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.markReady()
		s.cancel()
		return fmt.Errorf("failed to listen on %s: %v", s.httpServer.Addr, err)
	}
	s.addr = ln.Addr()
	s.log.Info("Starting server", zap.Stringer("addr", s.addr))
	s.markReady()

	serverErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-s.gracefulCtx.Done():
		// A forced quit has already closed the server.
		if s.ctx.Err() == nil {
			s.log.Info("Graceful shutdown initiated")
			// use parent ctx so if you call s.cancel() elsewhere it unblocks Shutdown immediately
			if err := s.httpServer.Shutdown(s.ctx); err != nil {
				s.log.Error("Graceful shutdown failed", zap.Error(err))
				return err
			}
		}
		<-serverErr
		s.log.Info("Server shut down")
		s.cancel()
		return nil

	case err := <-serverErr:
		if err != nil {
			s.log.Error("Server encountered error", zap.Error(err))
		}
		s.cancel()
		return err
	}
}

// Quit shuts down the HTTP server, gracefully unless force is set.
func (s *Server) Quit(force bool) {
	if force {
		_ = s.httpServer.Close()
		s.cancel()
	} else {
		s.gracefulCancel()
	}
	s.log.Info("Server quit")
}
