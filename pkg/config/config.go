// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration struct.
type Config struct {
	App          AppConfig          `koanf:"app"`
	GRPC         GRPCConfig         `koanf:"grpc"`
	Log          LogConfig          `koanf:"log"`
	Metrics      MetricsConfig      `koanf:"metrics"`
	Cache        CacheConfig        `koanf:"cache"`
	Seaports     SeaportsConfig     `koanf:"seaports"`
	Coordinates  CoordinatesConfig  `koanf:"coordinates"`
	SeaLaneGraph SeaLaneGraphConfig `koanf:"sealane_graph"`
	Chokepoints  ChokepointsConfig  `koanf:"chokepoints"`
	GraphBuilder GraphBuilderConfig `koanf:"graph_builder"`
	RoadEngine   RoadEngineConfig   `koanf:"road_engine"`
	Dispatch     DispatchConfig     `koanf:"dispatch"`
	HTTP         HTTPConfig         `koanf:"http"`
}

// AppConfig holds general application metadata.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// GRPCConfig controls the gRPC server.
type GRPCConfig struct {
	Port              int             `koanf:"port"`
	MaxRecvMsgSize    int             `koanf:"max_recv_msg_size"`
	MaxSendMsgSize    int             `koanf:"max_send_msg_size"`
	MaxConcurrentConn int             `koanf:"max_concurrent_conn"`
	KeepAlive         KeepAliveConfig `koanf:"keepalive"`
}

// KeepAliveConfig controls gRPC keepalive behavior.
type KeepAliveConfig struct {
	MaxConnectionIdle     time.Duration `koanf:"max_connection_idle"`
	MaxConnectionAge      time.Duration `koanf:"max_connection_age"`
	MaxConnectionAgeGrace time.Duration `koanf:"max_connection_age_grace"`
	Time                  time.Duration `koanf:"time"`
	Timeout               time.Duration `koanf:"timeout"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig controls the port/sea-node snap memoization cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Driver     string        `koanf:"driver"` // redis, memory
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// Address returns the cache backend's network address.
func (c CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SeaportsConfig controls the UN/LOCODE registry load (C2).
type SeaportsConfig struct {
	CSVPaths []string `koanf:"csv_paths"`
}

// CoordinatesConfig controls the port snapper (C3).
type CoordinatesConfig struct {
	MaxSnapDistanceKM float64 `koanf:"max_snap_distance_km"`
}

// SeaLaneGraphConfig points at the persisted sea graph produced by C5.
type SeaLaneGraphConfig struct {
	DataDir        string `koanf:"data_dir"`
	NodeIndexPath  string `koanf:"node_index_path"`
	ExpectedHash   string `koanf:"version_hash"`
}

// ChokepointsConfig points at the chokepoint metadata sidecar (C4).
type ChokepointsConfig struct {
	MetadataPath string `koanf:"metadata_path"`
}

// GraphBuilderConfig controls an offline sea-lane graph build (C5).
type GraphBuilderConfig struct {
	LandMaskPath         string  `koanf:"land_mask_path"`
	GridStepDegrees      float64 `koanf:"grid_step_degrees"`
	StrictConnectivity   bool    `koanf:"strict_connectivity"`
	MaxSeaSnapDistanceM  float64 `koanf:"max_sea_snap_distance_m"`
	OutputDir            string  `koanf:"output_dir"`
}

// RoadEngineConfig addresses the external road-routing collaborator.
type RoadEngineConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// DispatchConfig controls the query-time chokepoint-aware edge filter and
// the road/sea routing dispatch (C6).
type DispatchConfig struct {
	AverageSeaSpeedKnots float64 `koanf:"average_sea_speed_knots"`
}

// HTTPConfig controls the inbound JSON matrix API served alongside the
// gRPC health/reflection surface.
type HTTPConfig struct {
	Port                int  `koanf:"port"`
	ValidateCoordinates bool `koanf:"validate_coordinates_default"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.GRPC.Port <= 0 || c.GRPC.Port > 65535 {
		errs = append(errs, fmt.Sprintf("grpc.port must be between 1 and 65535, got %d", c.GRPC.Port))
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if len(c.Seaports.CSVPaths) == 0 {
		errs = append(errs, "seaports.csv_paths must contain at least one path")
	}

	if c.Coordinates.MaxSnapDistanceKM <= 0 {
		errs = append(errs, "coordinates.max_snap_distance_km must be positive")
	}

	if c.GraphBuilder.GridStepDegrees <= 0 {
		errs = append(errs, "graph_builder.grid_step_degrees must be positive")
	}

	if c.GraphBuilder.MaxSeaSnapDistanceM <= 0 {
		errs = append(errs, "graph_builder.max_sea_snap_distance_m must be positive")
	}

	if c.Dispatch.AverageSeaSpeedKnots <= 0 {
		errs = append(errs, "dispatch.average_sea_speed_knots must be positive")
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the environment is development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
