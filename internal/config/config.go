package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 环境变量前缀
const envPrefix = "SKULLKING_"

// Config 服务端配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig 成绩存档配置
type StorageConfig struct {
	HistoryDB string `yaml:"history_db"` // sqlite 文件路径，为空则不存档
}

// GameConfig 游戏配置
type GameConfig struct {
	MaxRounds       int `yaml:"max_rounds"`
	MaxSeats        int `yaml:"max_seats"`
	MinSeats        int `yaml:"min_seats"`
	TableTimeout    int `yaml:"table_timeout"`    // 空闲牌桌保留时长（分钟）
	ShutdownTimeout int `yaml:"shutdown_timeout"` // 优雅关闭等待对局结束的时长（秒）
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // debug/info/warn/error
	File  string `yaml:"file"`  // 为空则只输出到标准错误
}

// TableTimeoutDuration 返回空闲牌桌保留时长
func (c *GameConfig) TableTimeoutDuration() time.Duration {
	return time.Duration(c.TableTimeout) * time.Minute
}

// ShutdownTimeoutDuration 返回优雅关闭的等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// Load 加载配置文件，.env 与 SKULLKING_* 环境变量覆盖文件中的值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// .env 不存在时忽略
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1780
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1000
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Game.MaxRounds == 0 {
		c.Game.MaxRounds = 10
	}
	if c.Game.MaxSeats == 0 {
		c.Game.MaxSeats = 6
	}
	if c.Game.MinSeats == 0 {
		c.Game.MinSeats = 2
	}
	if c.Game.TableTimeout == 0 {
		c.Game.TableTimeout = 10
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = 300
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) applyEnv() {
	envString(&c.Server.Host, "HOST")
	envInt(&c.Server.Port, "PORT")
	envInt(&c.Server.MaxConnections, "MAX_CONNECTIONS")
	envString(&c.Redis.Addr, "REDIS_ADDR")
	envString(&c.Redis.Password, "REDIS_PASSWORD")
	envInt(&c.Redis.DB, "REDIS_DB")
	envString(&c.Storage.HistoryDB, "HISTORY_DB")
	envInt(&c.Game.MaxRounds, "MAX_ROUNDS")
	envInt(&c.Game.TableTimeout, "TABLE_TIMEOUT")
	envString(&c.Log.Level, "LOG_LEVEL")
	envString(&c.Log.File, "LOG_FILE")
}

func envString(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
