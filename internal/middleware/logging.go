// Package middleware holds the HTTP and Connect interceptors shared by all services.
package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC
// with its service, method and outcome. Rejected till input
// (invalid argument, unknown product, empty cart) is logged at Info,
// anything the server could not do at Error. A nil logger logs to slog.Default.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			log := logger
			if log == nil {
				log = slog.Default()
			}
			service, method := splitProcedure(req.Spec().Procedure)
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"service", service,
				"method", method,
				"peer", req.Peer().Addr,
				"duration", time.Since(start),
			}
			if err == nil {
				log.DebugContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String(), "error", err)
			if userError(code) {
				log.InfoContext(ctx, "RPC rejected", attrs...)
			} else {
				log.ErrorContext(ctx, "RPC failed", attrs...)
			}
			return resp, err
		}
	}
}

// splitProcedure turns "/vereinskasse.v1.RegisterService/AddToCart" into
// ("RegisterService", "AddToCart").
func splitProcedure(procedure string) (service, method string) {
	procedure = strings.TrimPrefix(procedure, "/")
	service, method, ok := strings.Cut(procedure, "/")
	if !ok {
		return "", procedure
	}
	if i := strings.LastIndexByte(service, '.'); i >= 0 {
		service = service[i+1:]
	}
	return service, method
}

func userError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeFailedPrecondition:
		return true
	}
	return false
}
