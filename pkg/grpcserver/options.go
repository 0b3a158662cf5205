package grpcserver

import (
	"net"
	"time"

	"google.golang.org/grpc"
)

type Option func(*Server)

func WithPort(port string) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort("", port)
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

func WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(s *Server) {
		s.serverOpts = append(s.serverOpts, grpc.ChainUnaryInterceptor(interceptors...))
	}
}

// WithListener replaces the TCP listener, used with bufconn in tests.
func WithListener(l net.Listener) Option {
	return func(s *Server) {
		s.listener = l
	}
}
