// Package grpc serves the authentication service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/auxillary/internal/logging"
	"github.com/dmitrijs2005/auxillary/internal/rpc"
	"github.com/dmitrijs2005/auxillary/internal/server/metrics"
	"github.com/dmitrijs2005/auxillary/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the part of services.AuthService the handlers need.
type AuthService interface {
	Register(ctx context.Context, req services.RegistrationRequest) (*services.Result, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.Result, error)
}

type GRPCServer struct {
	rpc.UnimplementedAuthServiceServer
	address string
	auth    AuthService
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, auth AuthService, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		auth:    auth,
		metrics: m,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.observeInterceptor))

	rpc.RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
