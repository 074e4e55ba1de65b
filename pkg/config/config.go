package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Generator struct {
		Count      int     `yaml:"count"`
		Seed       int64   `yaml:"seed"`
		NoiseSigma float64 `yaml:"noise_sigma"`
	} `yaml:"generator"`
	Quality struct {
		// MissingWarnRate marks a batch degraded when exceeded. A degraded
		// batch is reported, not rejected.
		MissingWarnRate float64 `yaml:"missing_warn_rate"`
	} `yaml:"quality"`
	Model struct {
		Trees     int     `yaml:"trees"`
		MaxDepth  int     `yaml:"max_depth"`
		MinLeaf   int     `yaml:"min_leaf"`
		EvalRatio float64 `yaml:"eval_ratio"`
		Seed      int64   `yaml:"seed"`
		// Clamp bounds are multiples of base_price applied to predictions.
		ClampLow    float64 `yaml:"clamp_low"`
		ClampHigh   float64 `yaml:"clamp_high"`
		ArtifactKey string  `yaml:"artifact_key"`
	} `yaml:"model"`
	Audit struct {
		WarnFraction float64 `yaml:"warn_fraction"`
	} `yaml:"audit"`
	Risk struct {
		MediumFloor   float64 `yaml:"medium_floor"`
		HighFloor     float64 `yaml:"high_floor"`
		CriticalFloor float64 `yaml:"critical_floor"`
	} `yaml:"risk"`
	Store struct {
		Type  string `yaml:"type"` // memory or redis
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"store"`
	Sink struct {
		Type       string `yaml:"type"` // memory or clickhouse
		ClickHouse struct {
			Host             string        `yaml:"host"`
			Port             int           `yaml:"port"`
			Database         string        `yaml:"database"`
			Table            string        `yaml:"table"`
			User             string        `yaml:"user"`
			Password         string        `yaml:"password"`
			UseHTTP          bool          `yaml:"use_http"`
			AsyncInsert      bool          `yaml:"async_insert"`
			WaitForAsync     bool          `yaml:"wait_for_async_insert"`
			DialTimeout      time.Duration `yaml:"dial_timeout"`
			ReadTimeout      time.Duration `yaml:"read_timeout"`
			WriteTimeout     time.Duration `yaml:"write_timeout"`
			MaxExecutionTime time.Duration `yaml:"max_execution_time"`
		} `yaml:"clickhouse"`
	} `yaml:"sink"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("STORE_TYPE"); v != "" {
		c.Store.Type = v
	}
	if v := os.Getenv("SINK_TYPE"); v != "" {
		c.Sink.Type = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.Sink.ClickHouse.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = []string{v}
	}
	if v := os.Getenv("GENERATOR_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Generator.Seed = seed
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Generator.Count == 0 {
		c.Generator.Count = 10000
	}
	if c.Generator.NoiseSigma == 0 {
		c.Generator.NoiseSigma = 2.0
	}
	if c.Quality.MissingWarnRate == 0 {
		c.Quality.MissingWarnRate = 0.05
	}
	if c.Model.Trees == 0 {
		c.Model.Trees = 100
	}
	if c.Model.MaxDepth == 0 {
		c.Model.MaxDepth = 10
	}
	if c.Model.MinLeaf == 0 {
		c.Model.MinLeaf = 5
	}
	if c.Model.EvalRatio == 0 {
		c.Model.EvalRatio = 0.2
	}
	if c.Model.ClampLow == 0 {
		c.Model.ClampLow = 0.3
	}
	if c.Model.ClampHigh == 0 {
		c.Model.ClampHigh = 3.0
	}
	if c.Model.ArtifactKey == "" {
		c.Model.ArtifactKey = "models/pricing_model.json"
	}
	if c.Audit.WarnFraction == 0 {
		c.Audit.WarnFraction = 0.5
	}
	if c.Risk.MediumFloor == 0 {
		c.Risk.MediumFloor = 6
	}
	if c.Risk.HighFloor == 0 {
		c.Risk.HighFloor = 12
	}
	if c.Risk.CriticalFloor == 0 {
		c.Risk.CriticalFloor = 20
	}
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Sink.Type == "" {
		c.Sink.Type = "memory"
	}
	if c.Sink.ClickHouse.Table == "" {
		c.Sink.ClickHouse.Table = "pricing_records"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Store.Type != "memory" && c.Store.Type != "redis" {
		return fmt.Errorf("store.type must be 'memory' or 'redis', got '%s'", c.Store.Type)
	}
	if c.Sink.Type != "memory" && c.Sink.Type != "clickhouse" {
		return fmt.Errorf("sink.type must be 'memory' or 'clickhouse', got '%s'", c.Sink.Type)
	}
	if c.Store.Type == "redis" && c.Store.Redis.Addr == "" {
		return fmt.Errorf("store.redis.addr is required for redis store")
	}
	if c.Sink.Type == "clickhouse" && c.Sink.ClickHouse.Host == "" {
		return fmt.Errorf("sink.clickhouse.host is required for clickhouse sink")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Model.EvalRatio <= 0 || c.Model.EvalRatio >= 1 {
		return fmt.Errorf("model.eval_ratio must be in (0,1), got %v", c.Model.EvalRatio)
	}
	if c.Model.ClampLow >= c.Model.ClampHigh {
		return fmt.Errorf("model.clamp_low must be below model.clamp_high")
	}
	return nil
}
