package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the forensics service
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Security  SecurityConfig  `mapstructure:"security"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Detection DetectionConfig `mapstructure:"detection"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// SecurityConfig holds transport security configuration
type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TelemetryConfig holds logging/observability configuration
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// DetectionConfig holds the fixed-rule thresholds of the three pattern
// detectors. The hop caps bound the otherwise exponential cycle/path
// enumeration.
type DetectionConfig struct {
	// Cycle detection
	CycleMinLength int `mapstructure:"cycle_min_length"`
	CycleMaxLength int `mapstructure:"cycle_max_length"`

	// Smurfing detection
	SmurfingWindow       time.Duration `mapstructure:"smurfing_window"`
	SmurfingFanThreshold int           `mapstructure:"smurfing_fan_threshold"`

	// Shell network detection
	ShellMinPathNodes int `mapstructure:"shell_min_path_nodes"`
	ShellMaxHops      int `mapstructure:"shell_max_hops"`
	ShellDegreeMin    int `mapstructure:"shell_degree_min"`
	ShellDegreeMax    int `mapstructure:"shell_degree_max"`
}

// ScoringConfig holds the ring scoring constants
type ScoringConfig struct {
	CycleBaseScore     float64 `mapstructure:"cycle_base_score"`
	CycleScoreCap      float64 `mapstructure:"cycle_score_cap"`
	SmurfingBaseScore  float64 `mapstructure:"smurfing_base_score"`
	SmurfingLargeScore float64 `mapstructure:"smurfing_large_score"`
	SmurfingLargeSize  int     `mapstructure:"smurfing_large_size"`
	ShellScore         float64 `mapstructure:"shell_score"`
}

// Load loads configuration from environment and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("RIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/rift-forensics")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults + env
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration without consulting the
// environment. Used by tests and library consumers.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; unmarshal cannot fail on them.
		panic(err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.max_upload_bytes", 16777216) // 16MB

	// Security defaults
	v.SetDefault("security.allowed_origins", []string{"*"})

	// Telemetry defaults
	v.SetDefault("telemetry.service_name", "rift-forensics")
	v.SetDefault("telemetry.environment", "development")
	v.SetDefault("telemetry.debug", false)

	// Detection defaults
	v.SetDefault("detection.cycle_min_length", 3)
	v.SetDefault("detection.cycle_max_length", 5)
	v.SetDefault("detection.smurfing_window", "72h")
	v.SetDefault("detection.smurfing_fan_threshold", 10)
	v.SetDefault("detection.shell_min_path_nodes", 4)
	v.SetDefault("detection.shell_max_hops", 5)
	v.SetDefault("detection.shell_degree_min", 2)
	v.SetDefault("detection.shell_degree_max", 3)

	// Scoring defaults
	v.SetDefault("scoring.cycle_base_score", 85.0)
	v.SetDefault("scoring.cycle_score_cap", 99.9)
	v.SetDefault("scoring.smurfing_base_score", 75.0)
	v.SetDefault("scoring.smurfing_large_score", 80.0)
	v.SetDefault("scoring.smurfing_large_size", 12)
	v.SetDefault("scoring.shell_score", 82.0)
}
