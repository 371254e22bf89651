package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/rpc"
	"github.com/dmitrijs2005/auxillary/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error to a gRPC status. Failure messages are
// passed through unchanged; anything else is reported as an internal error.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var f *services.Failure
	if errors.As(err, &f) {
		switch {
		case errors.Is(f, common.ErrorInvalidInput):
			return status.Error(codes.InvalidArgument, f.Message)
		case errors.Is(f, common.ErrorConflict):
			return status.Error(codes.AlreadyExists, f.Message)
		case errors.Is(f, common.ErrorUnauthorized):
			return status.Error(codes.Unauthenticated, f.Message)
		}
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {

	result, err := s.auth.Register(ctx, services.RegistrationRequest{
		UserName:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.ConfirmPassword,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.RegisterResponse{Success: result.Success, Message: result.Message}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {

	result, err := s.auth.Login(ctx, services.LoginRequest{
		UserName: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.LoginResponse{
		Success:      result.Success,
		Message:      result.Message,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}
