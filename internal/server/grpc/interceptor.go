package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/logging"
	"github.com/dmitrijs2005/auxillary/internal/rpc"
	"github.com/dmitrijs2005/auxillary/internal/server/metrics"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var operations = map[string]string{
	rpc.RegisterFullMethod: metrics.OperationRegister,
	rpc.LoginFullMethod:    metrics.OperationLogin,
}

// outcomeFromCode mirrors services.Outcome for errors already mapped to a status.
func outcomeFromCode(c codes.Code) string {
	switch c {
	case codes.OK:
		return "success"
	case codes.InvalidArgument:
		return "invalid_input"
	case codes.AlreadyExists:
		return "conflict"
	case codes.Unauthenticated:
		return "unauthorized"
	default:
		return "error"
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.RequestIDMetadataKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

// observeInterceptor tags the context with a request ID, then logs and
// records metrics for every finished call.
func (s *GRPCServer) observeInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	ctx = logging.WithRequestID(ctx, requestID(ctx))

	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	code := status.Code(err)
	s.logger.Info(ctx, "gRPC request", "method", info.FullMethod, "code", code.String(), "duration", elapsed)

	if op, ok := operations[info.FullMethod]; ok && s.metrics != nil {
		s.metrics.Observe(op, metrics.TransportGRPC, outcomeFromCode(code), elapsed)
	}

	return resp, err
}
