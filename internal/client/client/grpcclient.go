package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      rpc.AuthServiceClient
}

var _ Client = (*GRPCClient)(nil)

func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = metadata.AppendToOutgoingContext(ctx, common.RequestIDMetadataKey, uuid.NewString())
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for endpointURL. No connection is made
// until the first call. Each call is bounded by timeout.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewAuthServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Register(ctx context.Context, p RegisterParams) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Register(ctx, &rpc.RegisterRequest{
		Username:        p.UserName,
		Email:           p.Email,
		Password:        p.Password,
		ConfirmPassword: p.ConfirmPassword,
	})
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.Message, nil
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) (*Tokens, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return &ServerError{Code: st.Code(), Message: st.Message()}
	}
}
