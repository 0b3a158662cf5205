package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"
)

const (
	defaultReadTimeout       = 5 * time.Second
	defaultReadHeaderTimeout = 2 * time.Second
	defaultWriteTimeout      = 5 * time.Second
	defaultAddr              = ":80"
	defaultShutdownTimeout   = 3 * time.Second
)

type Server struct {
	server          *http.Server
	listener        net.Listener
	notify          chan error
	shutdownTimeout time.Duration
}

// New binds the listener before returning, so a busy port is reported here and not
// later through Notify.
func New(handler http.Handler, opts ...Option) (*Server, error) {
	httpServer := &http.Server{
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		Addr:              defaultAddr,
	}

	s := &Server{
		server:          httpServer,
		notify:          make(chan error, 1),
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	s.listener = listener

	s.start()

	return s, nil
}

func (s *Server) start() {
	go func() {
		err := s.server.Serve(s.listener)
		if !errors.Is(err, http.ErrServerClosed) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Addr is the bound address, useful when the port was 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
