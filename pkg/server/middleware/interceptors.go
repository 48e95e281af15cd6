package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const requestIDMetadataKey = "x-request-id"

// UnaryLogger puts a request scoped logger and the incoming trace context into ctx
// and logs the outcome of every call.
func UnaryLogger(logger *zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)

		requestID := first(md, requestIDMetadataKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDMetadataKey, requestID))

		logCtx := logger.With().
			Str("method", info.FullMethod).
			Str("request_id", requestID)
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			logCtx = logCtx.Str("remote_ip", p.Addr.String())
		}
		reqLogger := logCtx.Logger()

		ctx = otel.GetTextMapPropagator().Extract(ctx, carrier(md))
		ctx = reqLogger.WithContext(ctx)

		start := time.Now()
		resp, err := handler(ctx, req)

		// Internal failures are logged with their cause by the handler or UnaryRecoverer.
		code := status.Code(err)
		event := reqLogger.Info()
		if code == codes.Unknown {
			event = reqLogger.Error().Err(err)
		}
		event.
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("rpc finished")

		return resp, err
	}
}

// UnaryRecoverer turns handler panics into Internal errors
func UnaryRecoverer() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				zerolog.Ctx(ctx).Error().
					Str("panic", fmt.Sprint(r)).
					Bytes("stack", debug.Stack()).
					Msg("rpc handler panicked")
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func first(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func carrier(md metadata.MD) propagation.MapCarrier {
	c := make(propagation.MapCarrier, len(md))
	for k, v := range md {
		if len(v) > 0 {
			c[strings.ToLower(k)] = v[0]
		}
	}
	return c
}
