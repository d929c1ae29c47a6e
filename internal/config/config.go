package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"XANDO_LOG_LEVEL" env-default:"info"`
	Bot      Bot    `yaml:"bot"`
	Redis    Redis  `yaml:"redis"`
}

// Bot - the human plays against Strategy unless Hotseat puts two humans at one terminal.
type Bot struct {
	Hotseat  bool   `yaml:"hotseat" env:"XANDO_HOTSEAT"`
	Strategy string `yaml:"strategy" env:"XANDO_BOT_STRATEGY" env-default:"minimax"`
	Script   string `yaml:"script" env:"XANDO_BOT_SCRIPT" env-default:"scripts/bot.lua"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"XANDO_REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"XANDO_REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"XANDO_REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"XANDO_REDIS_TTL" env-default:"1h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
