package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/logging"
	"github.com/dmitrijs2005/auxillary/internal/rpc"
	"github.com/dmitrijs2005/auxillary/internal/server/metrics"
	"github.com/dmitrijs2005/auxillary/internal/server/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeAuth struct {
	registerRes *services.Result
	registerErr error
	loginRes    *services.Result
	loginErr    error

	gotRegister services.RegistrationRequest
	gotLogin    services.LoginRequest
	gotCtx      context.Context
}

func (f *fakeAuth) Register(ctx context.Context, req services.RegistrationRequest) (*services.Result, error) {
	f.gotCtx, f.gotRegister = ctx, req
	return f.registerRes, f.registerErr
}

func (f *fakeAuth) Login(ctx context.Context, req services.LoginRequest) (*services.Result, error) {
	f.gotCtx, f.gotLogin = ctx, req
	return f.loginRes, f.loginErr
}

// startBufconn serves s on an in-memory listener and returns a client.
func startBufconn(t *testing.T, s *GRPCServer) rpc.AuthServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return rpc.NewAuthServiceClient(conn)
}

func TestRegister_Success(t *testing.T) {
	auth := &fakeAuth{registerRes: &services.Result{Success: true, Message: services.MsgRegistered}}
	client := startBufconn(t, NewGRPCServer("", nopLogger{}, auth, nil))

	res, err := client.Register(context.Background(), &rpc.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "Password1", ConfirmPassword: "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, &rpc.RegisterResponse{Success: true, Message: services.MsgRegistered}, res)
	assert.Equal(t, services.RegistrationRequest{
		UserName: "alice", Email: "alice@example.com", Password: "Password1", PasswordConfirmation: "Password1",
	}, auth.gotRegister)
}

func TestLogin_Success(t *testing.T) {
	auth := &fakeAuth{loginRes: &services.Result{
		Success: true, Message: services.MsgLoggedIn, AccessToken: "a", RefreshToken: "r",
	}}
	client := startBufconn(t, NewGRPCServer("", nopLogger{}, auth, nil))

	res, err := client.Login(context.Background(), &rpc.LoginRequest{Username: "alice", Password: "Password1"})
	require.NoError(t, err)
	assert.Equal(t, "a", res.AccessToken)
	assert.Equal(t, "r", res.RefreshToken)
	assert.Equal(t, services.LoginRequest{UserName: "alice", Password: "Password1"}, auth.gotLogin)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"invalid input", &services.Failure{Kind: common.ErrorInvalidInput, Message: services.MsgPasswordTooShort}, codes.InvalidArgument, services.MsgPasswordTooShort},
		{"conflict", &services.Failure{Kind: common.ErrorConflict, Message: services.MsgUsernameTaken}, codes.AlreadyExists, services.MsgUsernameTaken},
		{"unauthorized", &services.Failure{Kind: common.ErrorUnauthorized, Message: services.MsgInvalidCredentials}, codes.Unauthenticated, services.MsgInvalidCredentials},
		{"store failure", errors.New("db error: connection refused"), codes.Internal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{registerErr: tt.err, loginErr: tt.err}
			client := startBufconn(t, NewGRPCServer("", nopLogger{}, auth, nil))

			_, err := client.Register(context.Background(), &rpc.RegisterRequest{Username: "alice"})
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())

			_, err = client.Login(context.Background(), &rpc.LoginRequest{Username: "alice"})
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())
		})
	}
}

func TestInterceptor_PropagatesRequestID(t *testing.T) {
	auth := &fakeAuth{loginRes: &services.Result{Success: true}}
	client := startBufconn(t, NewGRPCServer("", nopLogger{}, auth, nil))

	ctx := metadata.AppendToOutgoingContext(context.Background(), common.RequestIDMetadataKey, "req-42")
	_, err := client.Login(ctx, &rpc.LoginRequest{Username: "alice", Password: "p"})
	require.NoError(t, err)

	id, ok := logging.RequestIDFromContext(auth.gotCtx)
	require.True(t, ok)
	assert.Equal(t, "req-42", id)
}

func TestInterceptor_GeneratesRequestID(t *testing.T) {
	auth := &fakeAuth{loginRes: &services.Result{Success: true}}
	client := startBufconn(t, NewGRPCServer("", nopLogger{}, auth, nil))

	_, err := client.Login(context.Background(), &rpc.LoginRequest{Username: "alice", Password: "p"})
	require.NoError(t, err)

	id, ok := logging.RequestIDFromContext(auth.gotCtx)
	require.True(t, ok)
	assert.NotEmpty(t, id)
}

func TestInterceptor_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	auth := &fakeAuth{
		registerErr: &services.Failure{Kind: common.ErrorConflict, Message: services.MsgUsernameTaken},
		loginRes:    &services.Result{Success: true},
	}
	client := startBufconn(t, NewGRPCServer("", nopLogger{}, auth, m))

	_, _ = client.Register(context.Background(), &rpc.RegisterRequest{Username: "alice"})
	_, err := client.Login(context.Background(), &rpc.LoginRequest{Username: "alice", Password: "p"})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "auxillary_auth_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOutcomeFromCode(t *testing.T) {
	assert.Equal(t, "success", outcomeFromCode(codes.OK))
	assert.Equal(t, "invalid_input", outcomeFromCode(codes.InvalidArgument))
	assert.Equal(t, "conflict", outcomeFromCode(codes.AlreadyExists))
	assert.Equal(t, "unauthorized", outcomeFromCode(codes.Unauthenticated))
	assert.Equal(t, "error", outcomeFromCode(codes.Internal))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, &fakeAuth{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, &fakeAuth{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}
