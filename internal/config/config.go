package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

// Config holds all configuration for the execution worker. It names
// exactly one Execution.Language, which is validated at startup and
// reported by GET /health; the /execute handler does not check jobs
// against it and evaluates any supported language a job names.
type Config struct {
	Execution    ExecutionConfig
	GlobalLimits domain.GlobalLimits
	Orchestrator OrchestratorConfig
	Storage      StorageConfig
	Server       ServerConfig
}

type ExecutionConfig struct {
	Language         domain.Language `mapstructure:"EXECUTION_LANGUAGE"`
	WorkingDirectory string          `mapstructure:"EXECUTION_WORKING_DIRECTORY"`
	MaxConcurrent    int             `mapstructure:"EXECUTION_MAX_CONCURRENT_BATCHES"`
}

type OrchestratorConfig struct {
	Address      string `mapstructure:"ORCHESTRATOR_ADDRESS"`
	ApiHeaderName string `mapstructure:"ORCHESTRATOR_API_HEADER_NAME"`
	ApiKey       string `mapstructure:"ORCHESTRATOR_API_KEY"`
}

type StorageConfig struct {
	Endpoint        string `mapstructure:"AZURESTORAGE_ENDPOINT"`
	AccessKeyID     string `mapstructure:"AZURESTORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `mapstructure:"AZURESTORAGE_SECRET_ACCESS_KEY"`
	ContainerName   string `mapstructure:"AZURESTORAGE_CONTAINER_NAME"`
	UseSSL          bool   `mapstructure:"AZURESTORAGE_USE_SSL"`
}

type ServerConfig struct {
	Port          int           `mapstructure:"SERVER_PORT"`
	ReadTimeout   time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout  time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ApiHeaderName string        `mapstructure:"SERVER_API_HEADER_NAME"`
	ApiKey        string        `mapstructure:"SERVER_API_KEY"`
}

// Load reads worker configuration from environment variables (and an
// optional .env file) and validates it. Configuration errors are fatal:
// the process refuses to start rather than silently running the wrong
// language (spec.md §7).
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("EXECUTION_WORKING_DIRECTORY", "/var/lib/judgeworker/sandbox")
	viper.SetDefault("EXECUTION_MAX_CONCURRENT_BATCHES", 4)
	viper.SetDefault("GLOBALLIMITS_MAXTIMESEC", 10)
	viper.SetDefault("GLOBALLIMITS_MAXMEMORYMB", 512)
	viper.SetDefault("ORCHESTRATOR_API_HEADER_NAME", "X-Api-Key")
	viper.SetDefault("AZURESTORAGE_USE_SSL", false)
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_API_HEADER_NAME", "X-Api-Key")

	_ = viper.ReadInConfig()

	cfg := &Config{}
	cfg.Execution.Language = domain.Language(viper.GetString("EXECUTION_LANGUAGE"))
	cfg.Execution.WorkingDirectory = viper.GetString("EXECUTION_WORKING_DIRECTORY")
	cfg.Execution.MaxConcurrent = viper.GetInt("EXECUTION_MAX_CONCURRENT_BATCHES")

	cfg.GlobalLimits.MaxTimeSec = viper.GetInt("GLOBALLIMITS_MAXTIMESEC")
	cfg.GlobalLimits.MaxMemoryMb = viper.GetInt("GLOBALLIMITS_MAXMEMORYMB")

	cfg.Orchestrator.Address = viper.GetString("ORCHESTRATOR_ADDRESS")
	cfg.Orchestrator.ApiHeaderName = viper.GetString("ORCHESTRATOR_API_HEADER_NAME")
	cfg.Orchestrator.ApiKey = viper.GetString("ORCHESTRATOR_API_KEY")

	cfg.Storage.Endpoint = viper.GetString("AZURESTORAGE_ENDPOINT")
	cfg.Storage.AccessKeyID = viper.GetString("AZURESTORAGE_ACCESS_KEY_ID")
	cfg.Storage.SecretAccessKey = viper.GetString("AZURESTORAGE_SECRET_ACCESS_KEY")
	cfg.Storage.ContainerName = viper.GetString("AZURESTORAGE_CONTAINER_NAME")
	cfg.Storage.UseSSL = viper.GetBool("AZURESTORAGE_USE_SSL")

	cfg.Server.Port = viper.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = viper.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = viper.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.ApiHeaderName = viper.GetString("SERVER_API_HEADER_NAME")
	cfg.Server.ApiKey = viper.GetString("SERVER_API_KEY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Execution.Language == "" {
		return fmt.Errorf("config: EXECUTION_LANGUAGE is required")
	}
	if !c.Execution.Language.IsValid() {
		return fmt.Errorf("config: EXECUTION_LANGUAGE %q is not a supported language", c.Execution.Language)
	}
	if c.Execution.WorkingDirectory == "" {
		return fmt.Errorf("config: EXECUTION_WORKING_DIRECTORY is required")
	}
	if c.GlobalLimits.MaxTimeSec <= 0 {
		return fmt.Errorf("config: GLOBALLIMITS_MAXTIMESEC must be positive")
	}
	if c.GlobalLimits.MaxMemoryMb <= 0 {
		return fmt.Errorf("config: GLOBALLIMITS_MAXMEMORYMB must be positive")
	}
	return nil
}
