package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Mode     string `mapstructure:"mode"`
	Timezone string `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	// SlowQueryMS is the duration in milliseconds past which a query is
	// logged as slow.
	SlowQueryMS int `mapstructure:"slow_query_ms"`
}

func (d *DatabaseConfig) SlowQueryThreshold() time.Duration {
	return time.Duration(d.SlowQueryMS) * time.Millisecond
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// SourceLevel is the lowest level whose records carry their call site.
	// Debug mode lowers it to debug.
	SourceLevel string `mapstructure:"source_level"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LedgerConfig tunes the claim ledger.
type LedgerConfig struct {
	// RankRetryAttempts is how many times CreateClaim retries after losing a
	// rank race before surfacing a RankConflict error.
	RankRetryAttempts int `mapstructure:"rank_retry_attempts"`
}

type CacheConfig struct {
	StatusTTLSeconds int `mapstructure:"status_ttl_seconds"`
}

func (c *CacheConfig) StatusTTL() time.Duration {
	if c.StatusTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.StatusTTLSeconds) * time.Second
}

type PermissionConfig struct {
	ModelPath string `mapstructure:"model_path"`
}
