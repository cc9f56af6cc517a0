package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis     `yaml:"redis"`
	Uno        Uno       `yaml:"uno"`
	WebSocket  WebSocket `yaml:"websocket"`
}

type Redis struct {
	Host        string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password    string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB          int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	RoundsLimit int    `yaml:"rounds-limit" env-default:"50"`
}

type Uno struct {
	HandSize   int `yaml:"hand-size" env-default:"7"`
	MinPlayers int `yaml:"min-players" env-default:"2"`
	MaxPlayers int `yaml:"max-players" env-default:"10"`
}

type WebSocket struct {
	AllowedOrigins []string `yaml:"allowed-origins" env-default:"localhost:*"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
