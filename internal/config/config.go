package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "anonchat/pkg/config"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Identity  IdentityConfig
	Chat      ChatConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	StaticDir string `mapstructure:"static_dir"`
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

// IdentityConfig bounds the anonymous display id range. Ids are random within
// [Min, Max] and deliberately NOT unique across live sessions.
type IdentityConfig struct {
	MinID int `mapstructure:"min_id"`
	MaxID int `mapstructure:"max_id"`
}

type ChatConfig struct {
	AutoClearInterval time.Duration `mapstructure:"auto_clear_interval"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.static_dir", "./public")
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("identity.min_id", 1000)
	v.SetDefault("identity.max_id", 9999)
	v.SetDefault("chat.auto_clear_interval", "5m")
	v.SetDefault("log.level", "info")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.static_dir", "STATIC_DIR")
	v.BindEnv("chat.auto_clear_interval", "AUTO_CLEAR_INTERVAL")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Chat.AutoClearInterval = parseDuration(v, "chat.auto_clear_interval", 5*time.Minute)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
