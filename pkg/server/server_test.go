package server

import (
	"testing"

	"sealane/pkg/config"
	"sealane/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Init("error")
}

func TestNewServer(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "test-app", Environment: "production"},
		GRPC: config.GRPCConfig{
			Port:      50061,
			KeepAlive: config.KeepAliveConfig{},
		},
	}

	srv := New(cfg)
	assert.NotNil(t, srv)
	assert.NotNil(t, srv.GetEngine())
}

func TestNewServer_DevelopmentEnablesReflection(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{Name: "test-app", Environment: "development"},
		GRPC: config.GRPCConfig{Port: 50062},
	}

	srv := New(cfg)
	assert.NotNil(t, srv)
}
