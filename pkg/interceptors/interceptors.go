package interceptors

import (
	"google.golang.org/grpc"
)

// ServerConfig configures the sealane-svc gRPC interceptor chain.
type ServerConfig struct {
	ServiceName string
}

// UnaryServerInterceptors returns the chain of unary interceptors applied
// to every gRPC request: panic recovery, metrics, logging, validation.
func UnaryServerInterceptors(cfg *ServerConfig) grpc.UnaryServerInterceptor {
	interceptors := []grpc.UnaryServerInterceptor{
		RecoveryInterceptor(),
		MetricsInterceptor(cfg.ServiceName),
		LoggingInterceptor(),
		ValidationInterceptor(),
	}

	return chainUnaryInterceptors(interceptors...)
}

// StreamServerInterceptors returns the chain of stream interceptors.
func StreamServerInterceptors(cfg *ServerConfig) grpc.StreamServerInterceptor {
	interceptors := []grpc.StreamServerInterceptor{
		StreamRecoveryInterceptor(),
		StreamMetricsInterceptor(cfg.ServiceName),
		StreamLoggingInterceptor(),
	}

	return chainStreamInterceptors(interceptors...)
}
