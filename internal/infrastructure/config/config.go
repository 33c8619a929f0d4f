package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/geofoncier/geofoncier/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Ledger     sharedConfig.LedgerConfig     `mapstructure:"ledger"`
	Cache      sharedConfig.CacheConfig      `mapstructure:"cache"`
	Permission sharedConfig.PermissionConfig `mapstructure:"permission"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// An explicit configPath wins over the search path.
func Load(env string, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("GEOFONCIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Defaults plus environment are enough to boot; only a broken file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "Indian/Antananarivo")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "geofoncier_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.slow_query_ms", 200)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.source_level", "warn")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ledger.rank_retry_attempts", 3)
	v.SetDefault("cache.status_ttl_seconds", 60)
	v.SetDefault("permission.model_path", "./configs/rbac_model.conf")
}
